/*
Copyright © 2015-2022 Leo Antunes <leo@costela.net>

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program.  If not, see <http://www.gnu.org/licenses/>.
*/

package transpo

import (
	"errors"
	"fmt"
	"strings"

	"github.com/costela/transpo/golp"
)

var (
	// ErrConfiguration matches every *ConfigurationError.
	ErrConfiguration = errors.New("invalid network definition")
	// ErrEngineInUse is returned by Build for an engine that already
	// holds a model.
	ErrEngineInUse = errors.New("engine already holds a model")
	// ErrAlreadySolved is returned by a second call to Problem.Solve.
	ErrAlreadySolved = errors.New("problem already solved")
)

// ConfigurationError reports an incomplete or invalid network.
type ConfigurationError struct {
	Entity string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("transpo: %s: %s", e.Entity, e.Reason)
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// SolveError reports that the engine did not reach an optimal solution.
type SolveError struct {
	Status golp.Status
	Err    error
}

func (e *SolveError) Error() string {
	return fmt.Sprintf("transpo: solve ended with status %s: %v", e.Status, e.Err)
}

func (e *SolveError) Unwrap() error {
	return e.Err
}

// CheckError lists the ways a solution violates its network.
type CheckError struct {
	Violations []string
}

func (e *CheckError) Error() string {
	return fmt.Sprintf("transpo: solution check failed: %s", strings.Join(e.Violations, "; "))
}

// StageError reports the pipeline stage that failed.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

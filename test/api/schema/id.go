/*
Copyright 2026 the ServeRest API Test Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package schema

import (
	"errors"
	"regexp"
)

// IDLength is the length of every resource identifier the API issues.
const IDLength = 16

var ErrInvalidID = errors.New(MessageInvalidID)

var idValidationRegex = regexp.MustCompile("^[a-zA-Z0-9]{16}$")

// ID is a resource identifier. Unmarshalling rejects anything that is
// not exactly 16 alphanumeric characters.
type ID struct {
	Value string
}

func (n *ID) UnmarshalText(text []byte) error {
	if !idValidationRegex.Match(text) {
		return ErrInvalidID
	}

	*n = ID{
		Value: string(text),
	}

	return nil
}

// IsValidID reports whether id is well formed.
func IsValidID(id string) bool {
	return idValidationRegex.MatchString(id)
}

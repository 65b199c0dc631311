// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidAnalysis indicates a SourceAnalysis failed validation.
	ErrInvalidAnalysis = errors.New("invalid source analysis")

	// ErrInvalidSubmission indicates a Submission failed validation.
	ErrInvalidSubmission = errors.New("invalid submission")

	// ErrEmptySourceURL indicates the submission's source URL is empty.
	ErrEmptySourceURL = errors.New("source URL cannot be empty")

	// ErrEmptyUserID indicates the submitting user identifier is empty.
	ErrEmptyUserID = errors.New("user ID cannot be empty")

	// ErrEmptyAnalysis indicates the analysis has no usable content at all.
	ErrEmptyAnalysis = errors.New("analysis has no title, summary, scenes or topics")
)

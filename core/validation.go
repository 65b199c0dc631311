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

import (
	"fmt"
	"strings"
)

// ValidateAnalysis validates a SourceAnalysis according to domain rules.
//
// Validation rules:
//   - The analysis must not be nil
//   - At least one of title, summary, scenes or topics must be present
//
// NOT validated (optional fields degrade to placeholders during chunking):
//   - Audio (videos without speech are valid)
//   - TechnicalDetails, Keywords
func ValidateAnalysis(analysis *SourceAnalysis) error {
	if analysis == nil {
		return fmt.Errorf("%w: analysis is nil", ErrInvalidAnalysis)
	}

	if strings.TrimSpace(analysis.Title) == "" &&
		strings.TrimSpace(analysis.Summary) == "" &&
		len(analysis.Scenes) == 0 &&
		len(analysis.Topics) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidAnalysis, ErrEmptyAnalysis)
	}

	return nil
}

// ValidateSubmission validates the metadata supplied with a video submission.
//
// Validation rules:
//   - SourceURL must not be empty after trimming
//
// NOT validated (optional identity fields):
//   - MediaType, AccountID, Username, DisplayName
func ValidateSubmission(sub *Submission) error {
	if sub == nil {
		return fmt.Errorf("%w: submission is nil", ErrInvalidSubmission)
	}

	if strings.TrimSpace(sub.SourceURL) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidSubmission, ErrEmptySourceURL)
	}

	return nil
}

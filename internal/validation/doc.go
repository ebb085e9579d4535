// Marquee - TF-IDF Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is shared by the process. Field names in
// messages come from json tags, so errors read in terms of the request body:
//
//	type body struct {
//	    Genres []string `json:"genres" validate:"max=50,dive,max=200,nocontrol"`
//	}
//
//	if err := validation.ValidateStruct(&b); err != nil {
//	    // err.Error() == "genres[0] must be at most 200 characters"
//	}
//
// Custom tags:
//   - nocontrol: rejects strings containing control characters
package validation

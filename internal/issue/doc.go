// SPDX-License-Identifier: MPL-2.0

// Package issue turns runner failures into user-facing messages: a short
// actionable line with suggestions, and a longer Markdown guide per failure
// kind rendered with glamour.
package issue

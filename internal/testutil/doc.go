// SPDX-License-Identifier: MPL-2.0

// Package testutil provides test helpers that fail the test on setup errors
// and hand back cleanup functions: environment variables (MustSetenv,
// MustUnsetenv, SetConfigHome), directories and files (MustChdir,
// MustMkdirAll, MustWriteFile) and a semaphore bounding concurrent container
// tests.
package testutil

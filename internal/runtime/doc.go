// SPDX-License-Identifier: MPL-2.0

// Package runtime provides the execution backends behind cmdrunner.Executor:
// the host (native), an embedded POSIX shell (virtual) and a running container.
package runtime

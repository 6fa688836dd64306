// SPDX-License-Identifier: MPL-2.0

// Package container locates the Docker or Podman CLI and builds the argument
// vectors used to run commands inside an already running container.
package container

// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package stdlib holds the Vortex source loaded before user input.
package stdlib

import _ "embed"

// Prelude is the default prelude evaluated by every new runtime.
//
//go:embed prelude.vx
var Prelude string

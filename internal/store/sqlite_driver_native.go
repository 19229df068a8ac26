// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

//go:build !(js && wasm)

package store

import _ "modernc.org/sqlite"

// driverName is the database/sql name modernc.org/sqlite registers.
const driverName = "sqlite"

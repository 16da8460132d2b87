// Copyright (c) The Landfall Authors
// SPDX-License-Identifier: MPL-2.0
// Copyright (c) The Opentofu Authors
// SPDX-License-Identifier: MPL-2.0

package main

import (
	"os"
)

var interruptSignals = []os.Signal{os.Interrupt}

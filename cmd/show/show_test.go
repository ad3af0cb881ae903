// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package show

import (
	"testing"

	"github.com/matt-FFFFFF/rmount/internal/hostsfile"
	"github.com/matt-FFFFFF/rmount/internal/mounttab"
	"github.com/stretchr/testify/assert"
)

func TestState(t *testing.T) {
	snap := mounttab.Snapshot{
		"/base/alpha": "hostA:/data",
		"/base/beta":  "hostX:/other",
	}

	assert.Equal(t, "mounted",
		state(snap, "/base", hostsfile.Host{Local: "alpha", Remote: "hostA:/data"}))
	assert.Equal(t, `mounted from "hostX:/other"`,
		state(snap, "/base", hostsfile.Host{Local: "beta", Remote: "hostB:/data"}))
	assert.Equal(t, "not mounted",
		state(snap, "/base", hostsfile.Host{Local: "gamma", Remote: "hostC:/data"}))
}

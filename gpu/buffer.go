// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"

	"cogentcore.org/core/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// note: WriteBuffer is the preferred method for writing, so we only
// need to manage reads.

// BufferReadSync does a MapAsync on the given buffer, waiting on the
// device until the map is complete, and returning an error on any
// failure.
func BufferReadSync(dev *Device, size int, buffer *wgpu.Buffer) error {
	var status wgpu.BufferMapAsyncStatus
	err := buffer.MapAsync(wgpu.MapModeRead, 0, uint64(size), func(s wgpu.BufferMapAsyncStatus) {
		status = s
	})
	if errors.Log(err) != nil {
		return err
	}
	dev.WaitDone()
	if status != wgpu.BufferMapAsyncStatusSuccess {
		return errors.Log(fmt.Errorf("gpu: buffer map failed with status %v", status))
	}
	return nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

//go:build linux

package discover

import (
	"os"
	"syscall"
	"time"
)

// createdTime returns the closest thing Linux exposes to a creation
// timestamp: the inode change time.
func createdTime(info os.FileInfo) time.Time {
	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		return time.Unix(st.Ctim.Sec, st.Ctim.Nsec)
	}
	return info.ModTime()
}

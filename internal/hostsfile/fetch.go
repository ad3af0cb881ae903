// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package hostsfile

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-getter/v2"
	"github.com/spf13/afero"
)

// ErrFetchSource is returned when a remote hosts source cannot be fetched.
var ErrFetchSource = errors.New("failed to fetch hosts source")

// Read returns the contents of the hosts source. A source that exists on
// the given filesystem is read directly; anything else is treated as a
// go-getter URL and fetched to a temporary file first.
func Read(ctx context.Context, fsys afero.Fs, source string) ([]byte, error) {
	if ok, _ := afero.Exists(fsys, source); ok {
		data, err := afero.ReadFile(fsys, source)
		if err != nil {
			return nil, errors.Join(ErrReadSource, err)
		}

		return data, nil
	}

	return fetch(ctx, source)
}

// fetch downloads the source with go-getter and reads the resulting file.
func fetch(ctx context.Context, source string) ([]byte, error) {
	tmpDir, err := os.MkdirTemp("", "rmount-getter-*")
	if err != nil {
		return nil, errors.Join(ErrFetchSource, err)
	}

	defer os.RemoveAll(tmpDir) //nolint:errcheck

	wd, err := os.Getwd()
	if err != nil {
		return nil, errors.Join(ErrFetchSource, err)
	}

	cli := getter.Client{
		DisableSymlinks: true,
	}

	req := &getter.Request{
		Src:     source,
		Dst:     filepath.Join(tmpDir, "hosts"),
		Pwd:     wd,
		GetMode: getter.ModeFile,
	}

	res, err := cli.Get(ctx, req)
	if err != nil {
		return nil, errors.Join(ErrFetchSource, err)
	}

	data, err := os.ReadFile(res.Dst)
	if err != nil {
		return nil, errors.Join(ErrFetchSource, err)
	}

	return data, nil
}

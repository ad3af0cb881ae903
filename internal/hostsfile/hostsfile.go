// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package hostsfile

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/hashicorp/go-multierror"
)

var (
	// ErrMalformedLine is returned (wrapped, per line) for hosts lines that do not match the expected syntax.
	ErrMalformedLine = errors.New("malformed hosts line")
	// ErrMalformedEntry is returned (wrapped, per entry) for YAML host entries that are incomplete or invalid.
	ErrMalformedEntry = errors.New("malformed host entry")
	// ErrDecodeYAML is returned when a YAML hosts document cannot be decoded at all.
	ErrDecodeYAML = errors.New("failed to decode YAML hosts document")
	// ErrReadSource is returned when the hosts source cannot be read.
	ErrReadSource = errors.New("failed to read hosts source")
)

// Host is one declared local/remote mount pair. Local is the mount point's
// leaf name under the base directory; Remote is passed verbatim to the
// mount command.
type Host struct {
	Local  string `yaml:"local"`
	Remote string `yaml:"remote"`
}

// A local name must not start with a dot, so the hosts file itself (a
// dotfile in the base directory) can never be a target.
var (
	hostLinePattern  = regexp.MustCompile(`^([-A-Za-z0-9_][-A-Za-z0-9_.]*)=(.*)$`)
	localNamePattern = regexp.MustCompile(`^[-A-Za-z0-9_][-A-Za-z0-9_.]*$`)
)

// Parse decodes a hosts source, choosing the format from the file name
// extension: ".yaml"/".yml" parse as a YAML document, anything else as
// line-oriented "local=remote" pairs.
//
// The returned warns error, if non-nil, is a *multierror.Error holding one
// wrapped ErrMalformedLine/ErrMalformedEntry per skipped entry. Warnings do
// not abort the run; the remaining hosts are still returned. The err return
// is fatal (unreadable source or undecodable YAML document).
func Parse(name string, data []byte) (hosts []Host, warns, err error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return ParseLines(bytes.NewReader(data))
	}
}

// ParseLines decodes line-oriented hosts syntax: one "local=remote" pair per
// line, "#" starting a comment, blank lines ignored. Lines that do not match
// are skipped and reported through warns.
func ParseLines(r io.Reader) (hosts []Host, warns, err error) {
	var merr *multierror.Error

	scanner := bufio.NewScanner(r)
	lineNo := 0

	for scanner.Scan() {
		lineNo++

		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}

		if line == "" {
			continue
		}

		m := hostLinePattern.FindStringSubmatch(line)
		if m == nil {
			merr = multierror.Append(merr, fmt.Errorf("%w %d: %q", ErrMalformedLine, lineNo, line))
			continue
		}

		hosts = append(hosts, Host{Local: m[1], Remote: m[2]})
	}

	if err := scanner.Err(); err != nil {
		return nil, merr.ErrorOrNil(), errors.Join(ErrReadSource, err)
	}

	return hosts, merr.ErrorOrNil(), nil
}

// ParseYAML decodes a YAML hosts document of the form:
//
//	hosts:
//	  - local: alpha
//	    remote: hostA:/data
//
// Entries with a missing remote or an invalid local name are skipped and
// reported through warns.
func ParseYAML(data []byte) (hosts []Host, warns, err error) {
	var doc struct {
		Hosts []Host `yaml:"hosts"`
	}

	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, errors.Join(ErrDecodeYAML, err)
	}

	var merr *multierror.Error

	for i, h := range doc.Hosts {
		if !localNamePattern.MatchString(h.Local) || h.Remote == "" {
			merr = multierror.Append(merr, fmt.Errorf("%w %d: local=%q remote=%q", ErrMalformedEntry, i, h.Local, h.Remote))
			continue
		}

		hosts = append(hosts, h)
	}

	return hosts, merr.ErrorOrNil(), nil
}

// Warnings flattens a warns error returned by Parse into its individual
// diagnostics, for logging one line each.
func Warnings(warns error) []error {
	if warns == nil {
		return nil
	}

	var merr *multierror.Error
	if errors.As(warns, &merr) {
		return merr.Errors
	}

	return []error{warns}
}

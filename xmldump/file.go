// Copyright (C) 2022 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package xmldump

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
)

// closer composes an underlying file with whatever compression layer
// wraps it, so Close flushes and closes both in the right order.
type closer struct {
	w       io.WriteCloser
	under   *os.File
	zstdEnc *zstd.Encoder
}

func (c *closer) Write(p []byte) (int, error) { return c.w.Write(p) }

func (c *closer) Close() error {
	if c.zstdEnc != nil {
		if err := c.zstdEnc.Close(); err != nil {
			c.under.Close()
			return err
		}
	}
	return c.under.Close()
}

// Create opens dir/<runID><ext> for one run's dump, namespaced by the
// solve package's per-invocation UUID exactly as
// cmd/snellerd/handler_query.go namespaces per-request log lines. When
// zstdCompress is set the stream is wrapped in a zstd encoder (grounded
// on compr/compression.go's zstd usage), and ext should already include
// the ".zst" suffix the caller wants on disk.
func Create(dir string, runID uuid.UUID, ext string, zstdCompress bool) (io.WriteCloser, error) {
	path := filepath.Join(dir, runID.String()+ext)
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("xmldump: %w", err)
	}
	if !zstdCompress {
		return f, nil
	}
	enc, err := zstd.NewWriter(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("xmldump: %w", err)
	}
	return &closer{w: enc, under: f, zstdEnc: enc}, nil
}

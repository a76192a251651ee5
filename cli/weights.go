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

package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ctreegen/ctreegen/solve"
)

// parseWeights parses the `-w w1,w2,w3,w4,w5` flag value: exactly 5
// comma-separated numbers. Unlike solve.NewWeights, which also accepts
// 6 for the library's optional global k-path component, the CLI
// surface itself fixes the count at 5.
func parseWeights(v string) (solve.Weights, error) {
	parts := strings.Split(v, ",")
	if len(parts) != 5 {
		return solve.Weights{}, fmt.Errorf("-w must have exactly 5 comma-separated values, got %d", len(parts))
	}
	nums := make([]float64, 5)
	for i, p := range parts {
		n, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return solve.Weights{}, fmt.Errorf("-w value %d (%q) is not numeric: %w", i+1, p, err)
		}
		nums[i] = n
	}
	return solve.NewWeights(nums)
}

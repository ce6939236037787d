// Copyright © 2020 AMIS Technologies
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package driver

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProblemPlainNumber(t *testing.T) {
	p, err := ParseProblem("100")
	require.NoError(t, err)
	require.Len(t, p.Targets, 1)
	assert.Equal(t, big.NewInt(100), p.Targets[0].Num)
	assert.Nil(t, p.Targets[0].Den)
	assert.Equal(t, AllDigits(), p.Digits)
}

func TestParseProblemWithDigit(t *testing.T) {
	p, err := ParseProblem("2017#4")
	require.NoError(t, err)
	require.Len(t, p.Targets, 1)
	assert.Equal(t, "2017", p.Targets[0].String())
	assert.Equal(t, []uint64{4}, p.Digits)
}

func TestParseProblemRational(t *testing.T) {
	p, err := ParseProblem("1/7#3")
	require.NoError(t, err)
	require.Len(t, p.Targets, 1)
	assert.Equal(t, "1/7", p.Targets[0].String())
}

func TestParseProblemDigitList(t *testing.T) {
	p, err := ParseProblem("10#[1,3-5]")
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 3, 4, 5}, p.Digits)
}

func TestParseProblemTargetRange(t *testing.T) {
	p, err := ParseProblem("1-5#2")
	require.NoError(t, err)
	require.Len(t, p.Targets, 5)
	assert.Equal(t, "1", p.Targets[0].String())
	assert.Equal(t, "5", p.Targets[4].String())
}

func TestParseProblemTargetList(t *testing.T) {
	p, err := ParseProblem("[1,10-12,100]#9")
	require.NoError(t, err)
	var rendered []string
	for _, tgt := range p.Targets {
		rendered = append(rendered, tgt.String())
	}
	assert.Equal(t, []string{"1", "10", "11", "12", "100"}, rendered)
}

func TestParseProblemInvalid(t *testing.T) {
	_, err := ParseProblem("")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = ParseProblem("0")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = ParseProblem("12#0")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = ParseProblem("[1,2")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

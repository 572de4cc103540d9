/*
 * FrankyGo - UCI chess engine in GO for learning purposes
 *
 * MIT License
 *
 * Copyright (c) 2018-2020 Frank Kopp
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package testsuite

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/frankkopp/xqengine/internal/config"
	myLogging "github.com/frankkopp/xqengine/internal/logging"
)

func TestMain(m *testing.M) {
	config.Setup()
	log = myLogging.GetLog()
	os.Exit(m.Run())
}

// rookMateInOneFen is the position from the search package's own
// mate-in-one test: one red rook already covers the black king's left
// file and its advance square, the other swings onto the back rank to
// deliver the only mate. In UCCI coordinates that move is i7i9.
const rookMateInOneFen = "4k4/3R5/8R/9/9/9/9/9/9/3K5 w"

func TestGetTestParsesBestMoveLine(t *testing.T) {
	line := rookMateInOneFen + ` bm i7i9; id "rook-mate-in-one";`
	test := getTest(line)
	assert.NotNil(t, test)
	assert.Equal(t, rookMateInOneFen, test.fen)
	assert.Equal(t, BM, test.tType)
	assert.Equal(t, "i7i9", test.targetMoves.StringUci())
	assert.Equal(t, "rook-mate-in-one", test.id)
}

func TestGetTestParsesDirectMateLine(t *testing.T) {
	line := rookMateInOneFen + ` dm 1; id "dm1";`
	test := getTest(line)
	assert.NotNil(t, test)
	assert.Equal(t, DM, test.tType)
	assert.Equal(t, 1, test.mateDepth)
}

func TestGetTestStripsTrailingComment(t *testing.T) {
	line := rookMateInOneFen + ` bm i7i9; id "commented"; # a hand-written note`
	test := getTest(line)
	assert.NotNil(t, test)
	assert.Equal(t, "commented", test.id)
}

func TestGetTestReturnsNilForBlankAndCommentLines(t *testing.T) {
	assert.Nil(t, getTest(""))
	assert.Nil(t, getTest("   "))
	assert.Nil(t, getTest("# just a comment"))
}

func TestGetTestReturnsNilForMalformedLine(t *testing.T) {
	// "xx" is not a recognized opcode
	line := rookMateInOneFen + ` xx i7i9; id "bad-opcode";`
	assert.Nil(t, getTest(line))
}

func TestGetTestRejectsIllegalTargetMove(t *testing.T) {
	// a0 is an empty square in this position, so a0b0 can never be a
	// legal move and no legal target remains.
	line := rookMateInOneFen + ` bm a0b0; id "illegal";`
	assert.Nil(t, getTest(line))
}

func TestParseCoordMoveRoundTrips(t *testing.T) {
	mv, err := parseCoordMove("i7i9")
	assert.NoError(t, err)
	assert.Equal(t, "i7i9", mv.StringUci())

	_, err = parseCoordMove("a6a")
	assert.Error(t, err)
	_, err = parseCoordMove("z6a8")
	assert.Error(t, err)
}

func TestIsMateIn(t *testing.T) {
	assert.True(t, isMateIn(9999, 1))
	assert.True(t, isMateIn(-9999, 1))
	assert.True(t, isMateIn(9997, 3))
	assert.False(t, isMateIn(9997, 1))
	assert.False(t, isMateIn(100, 1))
}

func TestNewTestSuiteReadsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.epd")
	content := rookMateInOneFen + ` bm i7i9; id "t1";` + "\n" +
		"# a comment line, ignored\n" +
		rookMateInOneFen + ` dm 1; id "t2";` + "\n"
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	ts, err := NewTestSuite(path, 200*time.Millisecond, 0)
	assert.NoError(t, err)
	assert.Len(t, ts.Tests, 2)
	assert.Equal(t, BM, ts.Tests[0].tType)
	assert.Equal(t, DM, ts.Tests[1].tType)
}

func TestNewTestSuiteReturnsErrorForMissingFile(t *testing.T) {
	_, err := NewTestSuite("/no/such/file.epd", time.Second, 0)
	assert.Error(t, err)
}

func TestRunTestsFindsTheRookMate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mate.epd")
	content := rookMateInOneFen + ` bm i7i9; id "rook-mate";` + "\n"
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	ts, err := NewTestSuite(path, 0, 4)
	assert.NoError(t, err)
	ts.RunTests()

	assert.NotNil(t, ts.LastResult)
	assert.Equal(t, 1, ts.LastResult.Counter)
	assert.Equal(t, Success, ts.Tests[0].rType)
}

func TestFeatureTestsRunsEveryEpdFileInFolder(t *testing.T) {
	dir := t.TempDir()
	content := rookMateInOneFen + ` bm i7i9; id "rook-mate";` + "\n"
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "one.epd"), []byte(content), 0o644))
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "two.epd"), []byte(content), 0o644))
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("not an epd file"), 0o644))

	report := FeatureTests(dir+string(filepath.Separator), 0, 4)
	assert.Contains(t, report, "2 files, 2 tests")
}

//
// FrankyGo - UCI chess engine in GO for learning purposes
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//

package ucci

import (
	"bufio"
	"bytes"
	"os"
	"path"
	"runtime"
	"strings"
	"testing"
	"time"

	logging2 "github.com/op/go-logging"
	"github.com/stretchr/testify/assert"

	"github.com/frankkopp/xqengine/internal/config"
	"github.com/frankkopp/xqengine/internal/fen"
	"github.com/frankkopp/xqengine/internal/logging"
)

var logTest *logging2.Logger

// make tests run in the project's root directory
func init() {
	_, filename, _, _ := runtime.Caller(0)
	dir := path.Join(path.Dir(filename), "../..")
	err := os.Chdir(dir)
	if err != nil {
		panic(err)
	}
}

func TestMain(m *testing.M) {
	config.Setup()
	logTest = logging.GetTestLog()
	code := m.Run()
	os.Exit(code)
}

func TestUcciCommand(t *testing.T) {
	h := NewHandler()
	result := h.Command("ucci")
	assert.Contains(t, result, "id name xqengine")
	assert.Contains(t, result, "ucciok")
}

func TestIsreadyCmd(t *testing.T) {
	h := NewHandler()
	result := h.Command("isready")
	assert.Contains(t, result, "readyok")
}

func TestClearHash(t *testing.T) {
	h := NewHandler()
	result := h.Command("setoption name Clear Hash")
	assert.Contains(t, result, "Hash cleared")
}

func TestResizeHash(t *testing.T) {
	h := NewHandler()
	result := h.Command("setoption name Hash value 32")
	assert.Contains(t, result, "Hash resized")
}

func TestPositionCmd(t *testing.T) {
	h := NewHandler()

	h.Command("position startpos")
	assert.EqualValues(t, fen.StartFen, fen.String(h.myPosition))

	h.Command("position fen " + fen.StartFen)
	assert.EqualValues(t, fen.StartFen, fen.String(h.myPosition))

	result := h.Command("position fen")
	assert.Contains(t, result, "Command 'position' malformed")

	h.Command("position startpos moves b2e2")
	assert.NotEqual(t, fen.StartFen, fen.String(h.myPosition))

	result = h.Command("position startpos moves z9z9")
	assert.Contains(t, result, "Command 'position' malformed")
}

func TestReadSearchLimits(t *testing.T) {
	var cmd string

	cmd = "infinite"
	sl, malformed := readSearchLimits(strings.Fields(cmd))
	assert.False(t, malformed)
	assert.True(t, sl.Infinite)
	assert.False(t, sl.TimeControl)

	cmd = "ponder"
	sl, malformed = readSearchLimits(strings.Fields(cmd))
	assert.False(t, malformed)
	assert.True(t, sl.Ponder)

	cmd = "depth 6"
	sl, malformed = readSearchLimits(strings.Fields(cmd))
	assert.False(t, malformed)
	assert.EqualValues(t, 6, sl.Depth)

	cmd = "nodes 10000000"
	sl, malformed = readSearchLimits(strings.Fields(cmd))
	assert.False(t, malformed)
	assert.EqualValues(t, 10_000_000, sl.Nodes)

	cmd = "mate 4"
	sl, malformed = readSearchLimits(strings.Fields(cmd))
	assert.False(t, malformed)
	assert.EqualValues(t, 4, sl.Mate)

	cmd = "depth mate 4"
	_, malformed = readSearchLimits(strings.Fields(cmd))
	assert.True(t, malformed)

	cmd = "movetime 5000"
	sl, malformed = readSearchLimits(strings.Fields(cmd))
	assert.False(t, malformed)
	assert.EqualValues(t, 5000, sl.MoveTime.Milliseconds())
	assert.True(t, sl.TimeControl)

	cmd = "wtime 60000 btime 60000 winc 2000 binc 2000 depth 6 nodes 1000000 movestogo 20"
	sl, malformed = readSearchLimits(strings.Fields(cmd))
	assert.False(t, malformed)
	assert.EqualValues(t, 60000, sl.RedTime.Milliseconds())
	assert.EqualValues(t, 60000, sl.BlackTime.Milliseconds())
	assert.EqualValues(t, 2000, sl.RedInc.Milliseconds())
	assert.EqualValues(t, 2000, sl.BlackInc.Milliseconds())
	assert.EqualValues(t, 20, sl.MovesToGo)
	assert.EqualValues(t, 6, sl.Depth)
	assert.EqualValues(t, 1_000_000, sl.Nodes)
	assert.True(t, sl.TimeControl)
}

func TestMoveTextRoundTrip(t *testing.T) {
	mv, err := parseUcciMove("b2e2")
	assert.NoError(t, err)
	assert.EqualValues(t, "b2e2", moveToUcci(mv))

	_, err = parseUcciMove("b2e")
	assert.Error(t, err)

	_, err = parseUcciMove("z2e2")
	assert.Error(t, err)

	_, err = parseUcciMove("b2ez")
	assert.Error(t, err)
}

func TestFullSearchProcess(t *testing.T) {
	h := NewHandler()

	result := h.Command("ucci")
	assert.Contains(t, result, "ucciok")

	result = h.Command("isready")
	assert.Contains(t, result, "readyok")

	h.Command("setoption name Use_Book value false")
	h.Command("position startpos")

	h.Command("go movetime 300")
	assert.True(t, h.Searching())
	h.WaitForSearch()
	assert.False(t, h.Searching())
	assert.False(t, h.LastMoveWasBook())
}

func TestStopInterruptsInfiniteSearch(t *testing.T) {
	h := NewHandler()
	h.Command("setoption name Use_Book value false")
	h.Command("position startpos")

	h.Command("go infinite")
	assert.True(t, h.Searching())

	time.Sleep(200 * time.Millisecond)
	h.Command("stop")
	h.WaitForSearch()
	assert.False(t, h.Searching())
}

func TestLoop(t *testing.T) {
	h := NewHandler()
	h.InIo = bufio.NewScanner(strings.NewReader("ucci\nquit\n"))
	buffer := new(bytes.Buffer)
	h.OutIo = bufio.NewWriter(buffer)
	h.Loop()
	assert.Contains(t, buffer.String(), "ucciok")
}

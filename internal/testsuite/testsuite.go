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

// Package testsuite runs Xiangqi test positions described in a simple
// EPD-like line format against the engine's search, checking the result
// against a best move, an avoid move, or a direct mate depth. Only the
// "bm" (best move), "am" (avoid move) and "dm" (direct mate) opcodes are
// implemented - the rest of the EPD opcode space chess test suites use
// (eval, ce, pv, ...) has no Xiangqi equivalent worth carrying over.
package testsuite

import (
	"bufio"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/op/go-logging"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/frankkopp/xqengine/internal/config"
	"github.com/frankkopp/xqengine/internal/fen"
	myLogging "github.com/frankkopp/xqengine/internal/logging"
	"github.com/frankkopp/xqengine/internal/moveslice"
	"github.com/frankkopp/xqengine/internal/position"
	"github.com/frankkopp/xqengine/internal/search"
	. "github.com/frankkopp/xqengine/pkg/types"
)

var out = message.NewPrinter(language.German)
var log *logging.Logger

// testType defines the data type for the implemented opcode for EPD tests
// which are defined as constants below.
type testType uint8

// Implemented test types
const (
	None testType = iota
	DM   testType = iota
	BM   testType = iota
	AM   testType = iota
)

// resultType define possible results for a tests as a type and constants
type resultType uint8

const (
	NotTested resultType = iota
	Skipped   resultType = iota
	Failed    resultType = iota
	Success   resultType = iota
)

// SuiteResult data structure to collect sum of the results of tests
type SuiteResult struct {
	Counter          int
	SuccessCounter   int
	FailedCounter    int
	SkippedCounter   int
	NotTestedCounter int
}

// Test defines the data structure for a test after reading in the
// test file. Each test line creates an instance of this struct; running
// it fills in actual/value/rType.
type Test struct {
	id          string
	fen         string
	tType       testType
	targetMoves moveslice.MoveSlice
	mateDepth   int
	actual      Move
	value       int32
	rType       resultType
	line        string
	nodes       uint64
}

// TestSuite is the data structure for running a file of test lines.
type TestSuite struct {
	Tests      []*Test
	Time       time.Duration
	Depth      int
	FilePath   string
	LastResult *SuiteResult
}

// NewTestSuite creates an instance of a TestSuite and reads in the given
// file to create test cases which can be run with RunTests.
func NewTestSuite(filePath string, searchTime time.Duration, depth int) (*TestSuite, error) {
	if log == nil {
		log = myLogging.GetLog()
	}

	config.Settings.Search.UseBook = false

	lines, err := readFile(filePath)
	if err != nil {
		return nil, err
	}

	ts := &TestSuite{
		Tests:    make([]*Test, 0, len(lines)),
		Time:     searchTime,
		Depth:    depth,
		FilePath: filePath,
	}

	for _, line := range lines {
		test := getTest(line)
		if test == nil {
			continue
		}
		ts.Tests = append(ts.Tests, test)
	}

	return ts, nil
}

// RunTests runs every test in ts, each against its own Position and
// Search instance, concurrently: none of them share mutable state, so
// there is nothing serializing them beyond GOMAXPROCS. errgroup collects
// the first error (a malformed stored fen) without tearing down tests
// already in flight.
func (ts *TestSuite) RunTests() {
	if len(ts.Tests) == 0 {
		out.Printf("No tests to run\n")
		return
	}

	startTime := time.Now()

	var g errgroup.Group
	for _, t := range ts.Tests {
		t := t
		g.Go(func() error {
			return runSingleTest(ts.Time, ts.Depth, t)
		})
	}
	if err := g.Wait(); err != nil {
		log.Warningf("testsuite: %v", err)
	}

	tr := &SuiteResult{}
	for _, t := range ts.Tests {
		tr.Counter++
		switch t.rType {
		case NotTested:
			tr.NotTestedCounter++
		case Skipped:
			tr.SkippedCounter++
		case Failed:
			tr.FailedCounter++
		case Success:
			tr.SuccessCounter++
		}
	}
	ts.LastResult = tr

	out.Print(ts.String(time.Since(startTime)))
}

// String renders the full report table produced by the most recently
// completed RunTests call.
func (ts *TestSuite) String(elapsed time.Duration) string {
	var b strings.Builder
	b.WriteString(out.Sprintf("Results for Test Suite %s\n", ts.FilePath))
	b.WriteString("====================================================================================================\n")
	b.WriteString(out.Sprintf(" %-4s | %-10s | %-8s | %-15s | %s | %s\n", "Nr.", "Result", "Move", "Expected Result", "Fen", "Id"))
	b.WriteString("====================================================================================================\n")
	for i, t := range ts.Tests {
		if t.tType == DM {
			b.WriteString(out.Sprintf(" %-4d | %-10s | %-8s | dm %-12d | %s | %s\n",
				i+1, t.rType.String(), t.actual.StringUci(), t.mateDepth, t.fen, t.id))
		} else {
			b.WriteString(out.Sprintf(" %-4d | %-10s | %-8s | %s %-12s | %s | %s\n",
				i+1, t.rType.String(), t.actual.StringUci(), t.tType.String(), t.targetMoves.StringUci(), t.fen, t.id))
		}
	}
	b.WriteString("====================================================================================================\n")
	if ts.LastResult != nil {
		r := ts.LastResult
		b.WriteString(out.Sprintf("Successful: %-3d (%d%%)\n", r.SuccessCounter, pct(r.SuccessCounter, r.Counter)))
		b.WriteString(out.Sprintf("Failed:     %-3d (%d%%)\n", r.FailedCounter, pct(r.FailedCounter, r.Counter)))
		b.WriteString(out.Sprintf("Skipped:    %-3d (%d%%)\n", r.SkippedCounter, pct(r.SkippedCounter, r.Counter)))
		b.WriteString(out.Sprintf("Not tested: %-3d (%d%%)\n", r.NotTestedCounter, pct(r.NotTestedCounter, r.Counter)))
	}
	b.WriteString(out.Sprintf("Test time: %s\n", elapsed))
	return b.String()
}

func pct(n, total int) int {
	if total == 0 {
		return 0
	}
	return 100 * n / total
}

// runSingleTest creates a fresh Position and Search for t, runs the
// search, and fills in t's result fields.
func runSingleTest(searchTime time.Duration, depth int, t *Test) error {
	p, err := fen.Parse(t.fen)
	if err != nil {
		return err
	}

	s := search.NewSearch(config.Settings.Search.TTSize)
	sl := search.Limits{Depth: depth}
	if searchTime > 0 {
		sl.MoveTime = searchTime
		sl.TimeControl = true
	} else {
		sl.Infinite = true
	}

	switch t.tType {
	case DM:
		sl.Mate = t.mateDepth
		directMateTest(s, sl, p, t)
	case BM:
		bestMoveTest(s, sl, p, t)
	case AM:
		avoidMoveTest(s, sl, p, t)
	default:
		log.Warningf("testsuite: unknown test type %d", t.tType)
		t.rType = Skipped
	}
	return nil
}

func directMateTest(s *search.Search, sl search.Limits, p *position.Position, t *Test) {
	best := s.StartSearch(p, sl)
	stats := s.Stats()
	t.actual = best
	t.value = stats.BestValue
	t.nodes = stats.Nodes
	if best != NoMove && isMateIn(t.value, t.mateDepth) {
		t.rType = Success
		return
	}
	t.rType = Failed
}

func bestMoveTest(s *search.Search, sl search.Limits, p *position.Position, t *Test) {
	best := s.StartSearch(p, sl)
	stats := s.Stats()
	t.actual = best
	t.value = stats.BestValue
	t.nodes = stats.Nodes
	for _, m := range t.targetMoves {
		if m == best {
			t.rType = Success
			return
		}
	}
	t.rType = Failed
}

func avoidMoveTest(s *search.Search, sl search.Limits, p *position.Position, t *Test) {
	best := s.StartSearch(p, sl)
	stats := s.Stats()
	t.actual = best
	t.value = stats.BestValue
	t.nodes = stats.Nodes
	for _, m := range t.targetMoves {
		if m == best {
			t.rType = Failed
			return
		}
	}
	t.rType = Success
}

// isMateIn reports whether v is a mate score exactly depth plies deep -
// the sign carries who delivers the mate, so only the magnitude matters
// to a dm test.
func isMateIn(v int32, depth int) bool {
	const mateValue = 10000
	dist := mateValue - abs32(v)
	return dist == int32(depth)
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

var trailingComment = regexp.MustCompile(`^(.*?)#.*$`)
var epdLine = regexp.MustCompile(`^\s*(\S+ [wb]) (bm|dm|am) (.*?);(.* id "(.*?)";)?.*$`)

// getTest parses one line into a Test, or returns nil if the line is
// blank, a comment, or malformed.
func getTest(line string) *Test {
	line = strings.TrimSpace(line)
	line = trailingComment.ReplaceAllString(line, "$1")
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	m := epdLine.FindStringSubmatch(line)
	if m == nil {
		log.Warningf("testsuite: no test found in line %q", line)
		return nil
	}

	fenField, opcode, data, id := m[1], m[2], m[3], m[5]

	p, err := fen.Parse(fenField)
	if err != nil {
		log.Warningf("testsuite: invalid fen %q: %v", fenField, err)
		return nil
	}

	var tType testType
	switch opcode {
	case "dm":
		tType = DM
	case "bm":
		tType = BM
	case "am":
		tType = AM
	}

	targets := moveslice.NewMoveSlice(4)
	mateDepth := 0
	switch tType {
	case BM, AM:
		for _, tok := range strings.Fields(data) {
			mv, err := parseCoordMove(tok)
			if err != nil {
				log.Warningf("testsuite: %v", err)
				continue
			}
			if !p.LegalMove(mv) {
				log.Warningf("testsuite: move %q is not legal on %q", tok, fenField)
				continue
			}
			targets.PushBack(mv)
		}
		if targets.Len() == 0 {
			log.Warningf("testsuite: no legal target move found in %q", data)
			return nil
		}
	case DM:
		mateDepth, err = strconv.Atoi(strings.TrimSpace(data))
		if err != nil {
			log.Warningf("testsuite: invalid mate depth %q", data)
			return nil
		}
	}

	return &Test{
		id:          id,
		fen:         fenField,
		tType:       tType,
		targetMoves: *targets,
		mateDepth:   mateDepth,
		line:        line,
	}
}

// parseCoordMove decodes four-character coordinate move text - file
// 'a'..'i' then rank '0'..'9' counted from the bottom for Red, repeated
// for the destination square - the same notation the UCCI command loop
// speaks, so a test file's expected moves read the same as a bestmove
// line logged from a live engine run.
func parseCoordMove(s string) (Move, error) {
	if len(s) != 4 {
		return NoMove, fmt.Errorf("move %q is not 4 characters", s)
	}
	f1, err1 := coordFile(s[0])
	r1, err2 := coordRank(s[1])
	f2, err3 := coordFile(s[2])
	r2, err4 := coordRank(s[3])
	for _, err := range []error{err1, err2, err3, err4} {
		if err != nil {
			return NoMove, err
		}
	}
	return MakeMove(MakeSquare(f1, r1), MakeSquare(f2, r2)), nil
}

func coordFile(c byte) (uint8, error) {
	if c < 'a' || c > 'i' {
		return 0, fmt.Errorf("file %q out of range a..i", string(c))
	}
	return uint8(c-'a') + FileLeft, nil
}

func coordRank(c byte) (uint8, error) {
	if c < '0' || c > '9' {
		return 0, fmt.Errorf("rank %q out of range 0..9", string(c))
	}
	return RankBottom - (c - '0'), nil
}

// readFile reads every line of filePath into a slice of strings.
func readFile(filePath string) ([]string, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// FeatureTests runs every ".epd" file found directly under folder and
// returns a combined report, sorted by file name.
func FeatureTests(folder string, searchTime time.Duration, depth int) string {
	if log == nil {
		log = myLogging.GetLog()
	}

	files, err := ioutil.ReadDir(folder)
	if err != nil {
		return out.Sprintf("testsuite: could not read folder %q: %v", folder, err)
	}

	var names []string
	for _, f := range files {
		if filepath.Ext(f.Name()) == ".epd" {
			names = append(names, f.Name())
		}
	}
	sort.Strings(names)

	var b strings.Builder
	start := time.Now()
	totalTests, totalSuccess, totalFailed, totalSkipped, totalNotTested := 0, 0, 0, 0, 0

	for _, name := range names {
		ts, err := NewTestSuite(filepath.Join(folder, name), searchTime, depth)
		if err != nil {
			b.WriteString(out.Sprintf("testsuite: skipping %q: %v\n", name, err))
			continue
		}
		ts.RunTests()
		b.WriteString(ts.String(time.Since(start)))
		if ts.LastResult != nil {
			totalTests += ts.LastResult.Counter
			totalSuccess += ts.LastResult.SuccessCounter
			totalFailed += ts.LastResult.FailedCounter
			totalSkipped += ts.LastResult.SkippedCounter
			totalNotTested += ts.LastResult.NotTestedCounter
		}
	}

	b.WriteString(out.Sprintf("\nFeature Test Summary (%d files, %d tests, %s)\n", len(names), totalTests, time.Since(start)))
	b.WriteString(out.Sprintf("Successful: %-3d (%d%%)\n", totalSuccess, pct(totalSuccess, totalTests)))
	b.WriteString(out.Sprintf("Failed:     %-3d (%d%%)\n", totalFailed, pct(totalFailed, totalTests)))
	b.WriteString(out.Sprintf("Skipped:    %-3d (%d%%)\n", totalSkipped, pct(totalSkipped, totalTests)))
	b.WriteString(out.Sprintf("Not tested: %-3d (%d%%)\n", totalNotTested, pct(totalNotTested, totalTests)))
	return b.String()
}

func (rt resultType) String() string {
	switch rt {
	case NotTested:
		return "Not tested"
	case Skipped:
		return "Skipped"
	case Failed:
		return "Failed"
	case Success:
		return "Success"
	default:
		return "N/A"
	}
}

func (tt testType) String() string {
	switch tt {
	case BM:
		return "bm"
	case AM:
		return "am"
	case DM:
		return "dm"
	default:
		return "N/A"
	}
}

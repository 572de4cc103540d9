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

// Package ucci implements a UCCI-style text command loop: it reads
// whitespace-tokenized commands from an io.Reader, translates them into
// calls on internal/position, internal/search and internal/openingbook,
// and writes responses to an io.Writer. It knows nothing about search
// algorithms or board rules itself - it is glue.
package ucci

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/op/go-logging"

	"github.com/frankkopp/xqengine/internal/config"
	"github.com/frankkopp/xqengine/internal/fen"
	myLogging "github.com/frankkopp/xqengine/internal/logging"
	"github.com/frankkopp/xqengine/internal/movegen"
	"github.com/frankkopp/xqengine/internal/openingbook"
	"github.com/frankkopp/xqengine/internal/position"
	"github.com/frankkopp/xqengine/internal/search"
	"github.com/frankkopp/xqengine/internal/version"
	. "github.com/frankkopp/xqengine/pkg/types"
)

var regexWhiteSpace = regexp.MustCompile(`\s+`)

// Handler owns the one Position and one Search the command loop
// operates on, plus an opening book consulted before every search.
// Searches run on their own goroutine so "stop" can interrupt a "go
// infinite" from the same loop that issued it.
type Handler struct {
	log     *logging.Logger
	ucciLog *logging.Logger

	InIo  *bufio.Scanner
	OutIo *bufio.Writer

	myPosition *position.Position
	mySearch   *search.Search
	book       *openingbook.Book
	rng        *rand.Rand

	searching  bool
	searchDone chan struct{}
	bookMove   bool
}

// NewHandler returns a Handler sitting at the start position with a
// fresh Search and, when Settings.Search.UseBook is set, an opening
// book loaded from BookPath/BookFile. InIo/OutIo default to
// stdin/stdout; callers wanting to drive the loop programmatically
// replace them before calling Loop.
func NewHandler() *Handler {
	h := &Handler{
		log:        myLogging.GetLog(),
		ucciLog:    myLogging.GetUcciLog(),
		InIo:       bufio.NewScanner(os.Stdin),
		OutIo:      bufio.NewWriter(os.Stdout),
		myPosition: mustParse(fen.StartFen),
		mySearch:   search.NewSearch(config.Settings.Search.TTSize),
		book:       openingbook.NewBook(),
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	if config.Settings.Search.UseBook {
		path := config.Settings.Search.BookPath + "/" + config.Settings.Search.BookFile
		if err := h.book.Load(path); err != nil {
			h.log.Warningf("ucci: opening book not loaded: %v", err)
		}
	}
	return h
}

func mustParse(s string) *position.Position {
	p, err := fen.Parse(s)
	if err != nil {
		panic(err)
	}
	return p
}

// Loop reads one command per line from InIo until EOF or a "quit"
// command, writing each command's response to OutIo.
func (h *Handler) Loop() {
	for h.InIo.Scan() {
		line := h.InIo.Text()
		result := h.Command(line)
		if result != "" {
			_, _ = h.OutIo.WriteString(result)
			_ = h.OutIo.Flush()
		}
		if strings.TrimSpace(line) == "quit" {
			return
		}
	}
}

// Command dispatches a single command line and returns its immediate
// response, if any. "go" additionally spawns a goroutine which writes
// "bestmove ..." asynchronously once the search concludes, exactly as a
// real UCCI GUI expects.
func (h *Handler) Command(cmdLine string) string {
	cmdLine = strings.TrimSpace(cmdLine)
	h.ucciLog.Info(cmdLine)
	if cmdLine == "" {
		return ""
	}
	tokens := regexWhiteSpace.Split(cmdLine, -1)

	switch tokens[0] {
	case "ucci":
		return h.cmdUcci()
	case "isready":
		return "readyok\n"
	case "setoption":
		return h.cmdSetOption(tokens)
	case "ucinewgame":
		return h.cmdNewGame()
	case "position":
		return h.cmdPosition(tokens)
	case "go":
		return h.cmdGo(tokens)
	case "stop":
		h.mySearch.Stop()
		return ""
	case "ponderhit":
		return ""
	case "debug":
		return ""
	case "register":
		return "registration not required\n"
	case "quit":
		h.mySearch.Stop()
		h.waitForSearch()
		return ""
	case "d":
		return h.myPosition.String() + "\n" + fen.String(h.myPosition) + "\n" +
			"moves: " + movegen.DebugMoves(h.myPosition) + "\n"
	default:
		return fmt.Sprintf("unknown command: %s\n", tokens[0])
	}
}

func (h *Handler) cmdUcci() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("id name xqengine %s\n", version.Version))
	b.WriteString("id author xqengine contributors\n")
	b.WriteString(fmt.Sprintf("option name Use_Book type check default %v\n", config.Settings.Search.UseBook))
	b.WriteString(fmt.Sprintf("option name Hash type spin default %d min 1 max 4096\n", config.Settings.Search.TTSize))
	b.WriteString("option name Clear Hash type button\n")
	b.WriteString(fmt.Sprintf("option name Ponder type check default %v\n", config.Settings.Search.UsePonder))
	b.WriteString(fmt.Sprintf("option name UseQuiescence type check default %v\n", config.Settings.Search.UseQuiescence))
	b.WriteString(fmt.Sprintf("option name UseKiller type check default %v\n", config.Settings.Search.UseKiller))
	b.WriteString(fmt.Sprintf("option name UseHistory type check default %v\n", config.Settings.Search.UseHistory))
	b.WriteString(fmt.Sprintf("option name UseTTMove type check default %v\n", config.Settings.Search.UseTTMove))
	b.WriteString(fmt.Sprintf("option name UseTTValue type check default %v\n", config.Settings.Search.UseTTValue))
	b.WriteString(fmt.Sprintf("option name UseNullMove type check default %v\n", config.Settings.Search.UseNullMove))
	b.WriteString(fmt.Sprintf("option name NullMoveMinDepth type spin default %d min 1 max 10\n", config.Settings.Search.NullMoveMinDepth))
	b.WriteString("ucciok\n")
	return b.String()
}

// cmdNewGame resets the board to the start position and clears the
// transposition table so state learned in the previous game cannot
// leak into the next one.
func (h *Handler) cmdNewGame() string {
	h.mySearch.Stop()
	h.waitForSearch()
	h.myPosition = mustParse(fen.StartFen)
	h.mySearch.Tt().Clear()
	return ""
}

func (h *Handler) cmdSetOption(tokens []string) string {
	nameIdx, valueIdx := -1, -1
	for i, t := range tokens {
		switch t {
		case "name":
			nameIdx = i
		case "value":
			valueIdx = i
		}
	}
	if nameIdx < 0 {
		return "Command 'setoption' malformed\n"
	}
	end := len(tokens)
	if valueIdx > nameIdx {
		end = valueIdx
	}
	name := strings.Join(tokens[nameIdx+1:end], " ")
	value := ""
	if valueIdx > nameIdx {
		value = strings.Join(tokens[valueIdx+1:], " ")
	}

	switch name {
	case "Clear Hash":
		h.mySearch.Tt().Clear()
		return "Hash cleared\n"
	case "Hash":
		size, err := strconv.Atoi(value)
		if err != nil {
			return "Command 'setoption' malformed\n"
		}
		h.mySearch.Tt().Resize(size)
		config.Settings.Search.TTSize = size
		return "Hash resized\n"
	case "Use_Book":
		config.Settings.Search.UseBook = value == "true"
	case "Ponder":
		config.Settings.Search.UsePonder = value == "true"
	case "UseQuiescence":
		config.Settings.Search.UseQuiescence = value == "true"
	case "UseKiller":
		config.Settings.Search.UseKiller = value == "true"
	case "UseHistory":
		config.Settings.Search.UseHistory = value == "true"
	case "UseTTMove":
		config.Settings.Search.UseTTMove = value == "true"
	case "UseTTValue":
		config.Settings.Search.UseTTValue = value == "true"
	case "UseNullMove":
		config.Settings.Search.UseNullMove = value == "true"
	case "NullMoveMinDepth":
		if d, err := strconv.Atoi(value); err == nil {
			config.Settings.Search.NullMoveMinDepth = d
		}
	default:
		return fmt.Sprintf("Unknown option %q\n", name)
	}
	return ""
}

// cmdPosition implements "position startpos [moves ...]" and
// "position fen <fen> [moves ...]". The fen field itself never embeds
// the literal word "moves", so the boundary between the fen and a
// trailing move list is unambiguous once that keyword is found.
func (h *Handler) cmdPosition(tokens []string) string {
	if len(tokens) < 2 {
		return "Command 'position' malformed\n"
	}

	movesIdx := -1
	for i, t := range tokens {
		if t == "moves" {
			movesIdx = i
			break
		}
	}

	var fenStr string
	switch tokens[1] {
	case "startpos":
		fenStr = fen.StartFen
	case "fen":
		end := len(tokens)
		if movesIdx >= 0 {
			end = movesIdx
		}
		if end <= 2 {
			return "Command 'position' malformed\n"
		}
		fenStr = strings.Join(tokens[2:end], " ")
	default:
		return "Command 'position' malformed\n"
	}

	p, err := fen.Parse(fenStr)
	if err != nil {
		return fmt.Sprintf("Command 'position' malformed: %v\n", err)
	}
	h.myPosition = p

	if movesIdx >= 0 {
		for _, mvStr := range tokens[movesIdx+1:] {
			mv, err := parseUcciMove(mvStr)
			if err != nil || !h.myPosition.LegalMove(mv) || !h.myPosition.DoMove(mv) {
				return fmt.Sprintf("Command 'position' malformed: illegal move %q\n", mvStr)
			}
		}
	}
	return ""
}

func (h *Handler) cmdGo(tokens []string) string {
	limits, malformed := readSearchLimits(tokens[1:])
	if malformed {
		return "Command 'go' malformed\n"
	}

	h.searching = true
	h.searchDone = make(chan struct{})
	pos := h.myPosition
	go func() {
		defer close(h.searchDone)
		defer func() { h.searching = false }()

		var best Move
		h.bookMove = false
		if config.Settings.Search.UseBook {
			if mv := h.book.Move(pos, h.rng); mv != NoMove {
				best = mv
				h.bookMove = true
			}
		}
		if best == NoMove {
			best = h.mySearch.StartSearch(pos, limits)
		}
		_, _ = h.OutIo.WriteString("bestmove " + moveToUcci(best) + "\n")
		_ = h.OutIo.Flush()
	}()
	return ""
}

// Searching reports whether a "go" command's goroutine is still
// running.
func (h *Handler) Searching() bool {
	return h.searching
}

func (h *Handler) waitForSearch() {
	if h.searchDone != nil {
		<-h.searchDone
	}
}

// WaitForSearch blocks until the running search goroutine, if any, has
// finished and printed its bestmove.
func (h *Handler) WaitForSearch() {
	h.waitForSearch()
}

// LastMoveWasBook reports whether the most recently completed "go"
// command answered from the opening book rather than a search.
func (h *Handler) LastMoveWasBook() bool {
	return h.bookMove
}

// readSearchLimits parses the tokens following "go" into a search.Limits.
// It returns malformed=true on any recognized-but-unparsable numeric
// argument; unrecognized tokens are otherwise ignored rather than
// rejected, since a GUI may send option keywords this engine doesn't
// implement.
func readSearchLimits(tokens []string) (limits search.Limits, malformed bool) {
	for i := 0; i < len(tokens); i++ {
		switch tokens[i] {
		case "infinite":
			limits.Infinite = true
		case "ponder":
			limits.Ponder = true
		case "depth":
			i++
			v, bad := intArg(tokens, i)
			if bad {
				return limits, true
			}
			limits.Depth = v
		case "nodes":
			i++
			v, bad := intArg(tokens, i)
			if bad {
				return limits, true
			}
			limits.Nodes = uint64(v)
		case "mate":
			i++
			v, bad := intArg(tokens, i)
			if bad {
				return limits, true
			}
			limits.Mate = v
		case "movetime":
			i++
			v, bad := intArg(tokens, i)
			if bad {
				return limits, true
			}
			limits.MoveTime = time.Duration(v) * time.Millisecond
			limits.TimeControl = true
		case "wtime":
			i++
			v, bad := intArg(tokens, i)
			if bad {
				return limits, true
			}
			limits.RedTime = time.Duration(v) * time.Millisecond
			limits.TimeControl = true
		case "btime":
			i++
			v, bad := intArg(tokens, i)
			if bad {
				return limits, true
			}
			limits.BlackTime = time.Duration(v) * time.Millisecond
			limits.TimeControl = true
		case "winc":
			i++
			v, bad := intArg(tokens, i)
			if bad {
				return limits, true
			}
			limits.RedInc = time.Duration(v) * time.Millisecond
		case "binc":
			i++
			v, bad := intArg(tokens, i)
			if bad {
				return limits, true
			}
			limits.BlackInc = time.Duration(v) * time.Millisecond
		case "movestogo":
			i++
			v, bad := intArg(tokens, i)
			if bad {
				return limits, true
			}
			limits.MovesToGo = v
		}
	}
	return limits, false
}

func intArg(tokens []string, i int) (int, bool) {
	if i >= len(tokens) {
		return 0, true
	}
	v, err := strconv.Atoi(tokens[i])
	if err != nil {
		return 0, true
	}
	return v, false
}

// parseUcciMove decodes four-character UCCI move text - file 'a'..'i'
// then rank '0'..'9' counted from the bottom for the first side (Red),
// repeated for the destination square - into the engine's packed Move.
func parseUcciMove(s string) (Move, error) {
	if len(s) != 4 {
		return NoMove, fmt.Errorf("ucci: move %q is not 4 characters", s)
	}
	f1, err1 := ucciFileToInternal(s[0])
	r1, err2 := ucciRankToInternal(s[1])
	f2, err3 := ucciFileToInternal(s[2])
	r2, err4 := ucciRankToInternal(s[3])
	if err1 != nil {
		return NoMove, err1
	}
	if err2 != nil {
		return NoMove, err2
	}
	if err3 != nil {
		return NoMove, err3
	}
	if err4 != nil {
		return NoMove, err4
	}
	return MakeMove(MakeSquare(f1, r1), MakeSquare(f2, r2)), nil
}

// moveToUcci is parseUcciMove's inverse, used to print "bestmove" and
// opening book diagnostics.
func moveToUcci(mv Move) string {
	if mv == NoMove {
		return "0000"
	}
	from, to := mv.From(), mv.To()
	return fmt.Sprintf("%c%c%c%c",
		internalFileToUcci(from.File()), internalRankToUcci(from.Rank()),
		internalFileToUcci(to.File()), internalRankToUcci(to.Rank()))
}

func ucciFileToInternal(c byte) (uint8, error) {
	if c < 'a' || c > 'i' {
		return 0, fmt.Errorf("ucci: file %q out of range a..i", string(c))
	}
	return uint8(c-'a') + FileLeft, nil
}

func internalFileToUcci(f uint8) byte {
	return byte(f-FileLeft) + 'a'
}

func ucciRankToInternal(c byte) (uint8, error) {
	if c < '0' || c > '9' {
		return 0, fmt.Errorf("ucci: rank %q out of range 0..9", string(c))
	}
	return RankBottom - (c - '0'), nil
}

func internalRankToUcci(r uint8) byte {
	return byte(RankBottom-r) + '0'
}

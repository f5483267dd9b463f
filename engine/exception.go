package engine

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/dop251/goja"
	"github.com/dop251/goja/parser"
)

const terminatedMessage = "ExecutionTerminated: script execution has been terminated"

// ErrorKind records which stage produced an RtnError.
type ErrorKind uint8

const (
	ErrorKindCompile ErrorKind = iota + 1
	ErrorKindRuntime
	ErrorKindTerminated
	ErrorKindInternal
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorKindCompile:
		return "compile"
	case ErrorKindRuntime:
		return "runtime"
	case ErrorKindTerminated:
		return "terminated"
	case ErrorKindInternal:
		return "internal"
	default:
		return "ok"
	}
}

// RtnError is the plain-data form of every script failure. Location and
// Stack are empty when absent.
type RtnError struct {
	Msg      string
	Location string
	Stack    string
	Kind     ErrorKind
}

func (e *RtnError) Error() string {
	return e.Msg
}

// Format supports %+v, which prints the stack when one was captured and
// the location otherwise.
func (e *RtnError) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			switch {
			case e.Stack != "":
				io.WriteString(s, e.Stack)
			case e.Location != "":
				fmt.Fprintf(s, "%s at %s", e.Msg, e.Location)
			default:
				io.WriteString(s, e.Msg)
			}
			return
		}
		fallthrough
	case 's':
		io.WriteString(s, e.Msg)
	case 'q':
		fmt.Fprintf(s, "%q", e.Msg)
	}
}

// RtnValue carries exactly one of a Value or an RtnError.
type RtnValue struct {
	Value *Value
	Error *RtnError
}

func formatLocation(resource string, line, column int) string {
	if resource == "" {
		resource = "<eval>"
	}
	if line <= 0 {
		return resource
	}
	if column <= 0 {
		return resource + ":" + strconv.Itoa(line)
	}
	return resource + ":" + strconv.Itoa(line) + ":" + strconv.Itoa(column)
}

// compileScript parses and compiles source. Parse errors keep their
// position, which goja.Compile would drop.
func compileScript(source, origin string, strict bool) (*goja.Program, *RtnError) {
	ast, err := parser.ParseFile(nil, origin, source, 0)
	if err != nil {
		return nil, translateCompileError(err, origin)
	}
	prg, err := goja.CompileAST(ast, strict)
	if err != nil {
		return nil, translateCompileError(err, origin)
	}
	return prg, nil
}

func translateCompileError(err error, origin string) *RtnError {
	rtn := &RtnError{Kind: ErrorKindCompile}

	switch e := err.(type) {
	case parser.ErrorList:
		if len(e) == 0 {
			rtn.Msg = "SyntaxError: " + err.Error()
			break
		}
		first := e[0]
		rtn.Msg = "SyntaxError: " + first.Message
		rtn.Location = formatLocation(origin, first.Position.Line, first.Position.Column)
	case *parser.Error:
		rtn.Msg = "SyntaxError: " + e.Message
		rtn.Location = formatLocation(origin, e.Position.Line, e.Position.Column)
	case *goja.CompilerSyntaxError:
		rtn.Msg = "SyntaxError: " + e.Message
		if e.File != nil {
			pos := e.File.Position(e.Offset)
			rtn.Location = formatLocation(origin, pos.Line, pos.Column)
		}
	case *goja.CompilerReferenceError:
		rtn.Msg = "ReferenceError: " + e.Message
		if e.File != nil {
			pos := e.File.Position(e.Offset)
			rtn.Location = formatLocation(origin, pos.Line, pos.Column)
		}
	default:
		rtn.Msg = "SyntaxError: " + err.Error()
	}
	return rtn
}

// panicError carries a Go panic that escaped the engine during a run.
type panicError struct {
	value any
}

func (p *panicError) Error() string {
	return fmt.Sprint(p.value)
}

// frameLocation matches the position part of a goja stack frame, with or
// without a function name: "fn (file:1:2(3))" or "file:1:2(3)".
var frameLocation = regexp.MustCompile(`^(?:.*? \()?(.+?):(\d+):(\d+)\(\d+\)\)?$`)

// translateError converts a run failure into an RtnError. Termination
// takes priority over everything else.
func translateError(err error, interrupted, captureStack bool) *RtnError {
	if interrupted {
		return &RtnError{Msg: terminatedMessage, Kind: ErrorKindTerminated}
	}

	switch e := err.(type) {
	case *goja.InterruptedError:
		return &RtnError{Msg: terminatedMessage, Kind: ErrorKindTerminated}
	case *goja.Exception:
		return translateException(e, captureStack)
	case *panicError:
		return &RtnError{Msg: "InternalError: " + e.Error(), Kind: ErrorKindInternal}
	default:
		return &RtnError{Msg: err.Error(), Kind: ErrorKindInternal}
	}
}

func translateException(ex *goja.Exception, captureStack bool) *RtnError {
	rtn := &RtnError{Kind: ErrorKindRuntime}

	msg, full := exceptionText(ex)
	rtn.Msg = msg

	frames := strings.TrimPrefix(full, msg)
	frames = strings.TrimLeft(frames, "\n")
	frames = strings.TrimRight(frames, "\n")

	for _, line := range strings.Split(frames, "\n") {
		frame := strings.TrimPrefix(line, "\tat ")
		m := frameLocation.FindStringSubmatch(frame)
		if m == nil {
			continue
		}
		lineNo, _ := strconv.Atoi(m[2])
		col, _ := strconv.Atoi(m[3])
		rtn.Location = formatLocation(m[1], lineNo, col)
		break
	}

	if captureStack && frames != "" {
		rtn.Stack = msg + "\n" + frames
	}
	return rtn
}

// exceptionText returns the thrown value's string form and the full
// exception text with frames. Converting the value may itself throw; the
// engine's short form is used then.
func exceptionText(ex *goja.Exception) (msg, full string) {
	defer func() {
		if p := recover(); p != nil {
			msg = "Uncaught exception"
			full = msg
		}
	}()
	if v := ex.Value(); v != nil {
		msg = v.String()
	}
	if msg == "" {
		msg = "Uncaught exception"
	}
	return msg, ex.String()
}

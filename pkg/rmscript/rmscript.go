package rmscript

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"nickandperla.net/rmscript/internal/diag"
	"nickandperla.net/rmscript/internal/optimizer"
	"nickandperla.net/rmscript/internal/parser"
	"nickandperla.net/rmscript/internal/scanner"
	"nickandperla.net/rmscript/internal/semantic"
	"nickandperla.net/rmscript/internal/store"
)

// CompilationResult aggregates everything a compilation produced.
type CompilationResult struct {
	Name        string
	Description string

	Success  bool
	Errors   []Diagnostic
	Warnings []Diagnostic

	SourceCode     string
	SourceFilePath string

	IR []Action
}

// Messages returns all errors then warnings, formatted for display.
func (r *CompilationResult) Messages() []string {
	out := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, d := range r.Errors {
		out = append(out, d.String())
	}
	for _, d := range r.Warnings {
		out = append(out, d.String())
	}
	return out
}

// Context returns the execution context adapters receive alongside the IR.
func (r *CompilationResult) Context() ExecutionContext {
	return ExecutionContext{
		ScriptName:        r.Name,
		ScriptDescription: r.Description,
		SourceFilePath:    r.SourceFilePath,
	}
}

// ExecutionContext carries script metadata to execution adapters.
type ExecutionContext struct {
	ScriptName        string
	ScriptDescription string
	SourceFilePath    string
	Extra             map[string]any
}

// Adapter executes IR against a target: a robot, a simulator, a recorder.
// The compiler never calls adapters; callers hand them the IR themselves.
type Adapter interface {
	Execute(actions []Action, ctx ExecutionContext) (map[string]any, error)
}

// Compiler compiles rmscript source into IR. Each call is synchronous and
// pure with respect to its inputs; concurrent compilations on independent
// sources need no locking.
type Compiler struct {
	name   string
	limits semantic.Limits
	store  store.Store
}

// New creates a Compiler with the given options.
func New(opts ...Option) *Compiler {
	c := &Compiler{limits: semantic.DefaultLimits()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compile compiles rmscript source into a CompilationResult. Diagnostics
// from every phase accumulate; the optimizer only runs on error-free IR.
func (c *Compiler) Compile(source string) CompilationResult {
	result := CompilationResult{
		Name:       c.name,
		SourceCode: source,
	}
	if result.Name == "" {
		result.Name = "rmscript_tool"
	}

	tokens, lexDiags := scanner.Scan(source)
	program, parseDiags := parser.Parse(tokens, source)
	result.Description = program.Description

	irList, semDiags := semantic.NewWithLimits(c.limits).Analyze(program)

	all := make([]Diagnostic, 0, len(lexDiags)+len(parseDiags)+len(semDiags))
	all = append(all, lexDiags...)
	all = append(all, parseDiags...)
	all = append(all, semDiags...)
	result.Errors, result.Warnings = diag.Split(all)

	result.IR = irList
	result.Success = len(result.Errors) == 0
	if result.Success {
		result.IR = optimizer.Optimize(irList)
	}

	return result
}

// CompileFile reads and compiles a script file. The script name is derived
// from the filename stem with whitespace replaced by underscores.
func (c *Compiler) CompileFile(path string) CompilationResult {
	data, err := os.ReadFile(path)
	if err != nil {
		result := CompilationResult{Name: c.name}
		if os.IsNotExist(err) {
			result.Errors = append(result.Errors, diag.Errorf(0, 0, "File not found: %s", path))
		} else {
			result.Errors = append(result.Errors, diag.Errorf(0, 0, "Error reading file: %v", err))
		}
		return result
	}

	result := c.Compile(string(data))
	if c.name == "" {
		result.Name = nameFromPath(path)
	}
	if abs, err := filepath.Abs(path); err == nil {
		result.SourceFilePath = abs
	} else {
		result.SourceFilePath = path
	}
	return result
}

// Verify compiles source and returns whether it is valid along with all
// formatted error and warning messages. The IR is not retained.
func (c *Compiler) Verify(source string) (bool, []string) {
	result := c.Compile(source)
	return result.Success, result.Messages()
}

// Save persists a compiled script into the configured store.
func (c *Compiler) Save(result *CompilationResult) error {
	if c.store == nil {
		return fmt.Errorf("no store configured")
	}
	return c.store.Put(&store.Script{
		Name:        result.Name,
		Description: result.Description,
		Source:      result.SourceCode,
		Compiled:    result.Success,
	})
}

// Load retrieves a script from the configured store. Returns nil if the
// script is not stored.
func (c *Compiler) Load(name string) (*Script, error) {
	if c.store == nil {
		return nil, fmt.Errorf("no store configured")
	}
	return c.store.Get(name)
}

// Scripts lists the names in the configured store.
func (c *Compiler) Scripts() ([]string, error) {
	if c.store == nil {
		return nil, fmt.Errorf("no store configured")
	}
	return c.store.List()
}

// Close releases resources.
func (c *Compiler) Close() error {
	if c.store != nil {
		return c.store.Close()
	}
	return nil
}

// Compile compiles rmscript source with default options.
func Compile(source string, opts ...Option) CompilationResult {
	return New(opts...).Compile(source)
}

// CompileFile compiles an rmscript file with default options.
func CompileFile(path string, opts ...Option) CompilationResult {
	return New(opts...).CompileFile(path)
}

// Verify checks rmscript source, returning validity and formatted messages.
func Verify(source string) (bool, []string) {
	return New().Verify(source)
}

// nameFromPath derives a script name from the filename stem, replacing
// whitespace runs with underscores.
func nameFromPath(path string) string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	fields := strings.Fields(stem)
	if len(fields) == 0 {
		return stem
	}
	return strings.Join(fields, "_")
}

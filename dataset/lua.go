package dataset

import (
	"fmt"
	"sync"

	lua "github.com/yuin/gopher-lua"
	luajson "layeh.com/gopher-json"

	"github.com/vendq/vendq/entity"
)

type LuaProcessorConfig struct {
	Name       string `yaml:"-"`
	ScriptPath string `yaml:"script-path"`
}

// LuaProcessor normalizes dataset lines with a user-provided Lua script,
// for records files that are not in the canonical shape. The script MUST
// define a function named `transform_record` taking the raw line as a
// string and returning a JSON string in the canonical record shape.
// A JSON helper is available via `local json = require("json")`.
type LuaProcessor struct {
	cfg  LuaProcessorConfig
	pool *sync.Pool
}

func NewLuaProcessor(cfg LuaProcessorConfig) (*LuaProcessor, error) {
	pool := &sync.Pool{
		New: func() any {
			L := lua.NewState(lua.Options{
				SkipOpenLibs: true, // Don't load anything by default
			})

			// Manually open only the safe libraries.
			// We skip 'os' and 'io' to prevent system commands/file access.
			for _, lib := range []struct {
				name string
				fn   lua.LGFunction
			}{
				{lua.LoadLibName, lua.OpenPackage},  // Allows 'require'
				{lua.BaseLibName, lua.OpenBase},     // Allows 'print', 'pairs', etc.
				{lua.TabLibName, lua.OpenTable},     // Allows 'table.insert', etc.
				{lua.StringLibName, lua.OpenString}, // Allows string manipulation
			} {
				L.Push(L.NewFunction(lib.fn))
				L.Push(lua.LString(lib.name))
				L.Call(1, 0)
			}

			// Pre-register the JSON module in this VM.
			luajson.Preload(L)

			// Load the user's script once per VM in the pool.
			if err := L.DoFile(cfg.ScriptPath); err != nil {
				panic(err)
			}

			return L
		},
	}

	return &LuaProcessor{
		cfg:  cfg,
		pool: pool,
	}, nil
}

func (lp *LuaProcessor) Name() string {
	return lp.cfg.Name
}

func (lp *LuaProcessor) Process(line []byte) (entity.PaymentTerm, error) {
	L := lp.pool.Get().(*lua.LState)
	defer lp.pool.Put(L)

	err := L.CallByParam(lua.P{
		Fn:      L.GetGlobal("transform_record"),
		NRet:    1,
		Protect: true,
	}, lua.LString(string(line)))

	if err != nil {
		return entity.PaymentTerm{}, fmt.Errorf("lua script error: %w", err)
	}

	normalized := L.ToString(-1)
	L.Pop(1)

	// Decoding happens outside the Lua VM lock.
	return decodeWire([]byte(normalized))
}

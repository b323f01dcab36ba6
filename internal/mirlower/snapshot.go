package mirlower

import "github.com/vmihailenco/msgpack/v5"

// Snapshot is a deterministic, msgpack-encodable projection of a Body,
// used by golden/snapshot tests to pin lowering output across changes
// without comparing Go struct literals field-by-field.
type Snapshot struct {
	Def      uint32
	ArgCount int
	Start    uint32
	Blocks   []BlockSnapshot
	Locals   []LocalSnapshot
	Memory   []byte
}

type LocalSnapshot struct {
	Type    uint32
	Binding uint32
}

type BlockSnapshot struct {
	Stmts []string
	Term  string
}

// Encode renders b as a Snapshot and marshals it to msgpack bytes.
func Encode(b *Body) ([]byte, error) {
	return msgpack.Marshal(snapshotOf(b))
}

func snapshotOf(b *Body) Snapshot {
	s := Snapshot{
		Def:      uint32(b.Def),
		ArgCount: b.ArgCount,
		Start:    uint32(b.Start),
		Memory:   append([]byte(nil), b.Memory.Bytes()...),
	}
	for _, l := range b.Locals {
		s.Locals = append(s.Locals, LocalSnapshot{Type: uint32(l.Type), Binding: uint32(l.Binding)})
	}
	for _, blk := range b.Blocks {
		bs := BlockSnapshot{Term: describeTerm(blk.Term)}
		for _, st := range blk.Stmts {
			bs.Stmts = append(bs.Stmts, describeStmt(st))
		}
		s.Blocks = append(s.Blocks, bs)
	}
	return s
}

func describeStmt(st Statement) string {
	switch st.Kind {
	case StmtAssign:
		return "assign"
	case StmtStorageLive:
		return "storage_live"
	case StmtStorageDead:
		return "storage_dead"
	default:
		return "unknown"
	}
}

func describeTerm(t Terminator) string {
	switch t.Kind {
	case TermGoto:
		return "goto"
	case TermSwitchInt:
		return "switch_int"
	case TermCall:
		return "call"
	case TermReturn:
		return "return"
	case TermUnreachable:
		return "unreachable"
	default:
		return "none"
	}
}

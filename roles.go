package gifanim

import "fmt"

// Cell roles used by the maze-style driving scripts. Algorithms write
// these logical values into the canvas; the active colormap maps them
// to palette slots at encode time.
const (
	RoleWall uint8 = iota
	RoleTree
	RolePath
	RoleFill
)

var roles = map[string]uint8{
	"wall": RoleWall,
	"tree": RoleTree,
	"path": RolePath,
	"fill": RoleFill,
}

// Role returns the logical cell value for a named role.
func Role(name string) (uint8, error) {
	value, ok := roles[name]
	if !ok {
		return 0, fmt.Errorf("gifanim: unknown role %q", name)
	}
	return value, nil
}

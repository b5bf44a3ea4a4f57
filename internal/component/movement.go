// component/movement.go
package component

import "go-survivor/pkg/utils"

// Camera центр экрана в мировых координатах, следует за игроком.
type Camera struct {
	Position utils.Vector2D
}

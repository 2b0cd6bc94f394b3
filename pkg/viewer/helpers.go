package viewer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

var ErrUnknownKey = errors.New("unknown key")

// lookupKey finds the ebiten key called name (e.g. "F1", "h"), ignoring case.
func lookupKey(name string) (ebiten.Key, error) {
	name = strings.TrimSpace(name)
	for k := ebiten.Key(0); k <= ebiten.KeyMax; k++ {
		if strings.EqualFold(k.String(), name) {
			return k, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownKey, name)
}

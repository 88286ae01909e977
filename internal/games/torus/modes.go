// Package torus implements 2048 on a toroidal board as a registry game,
// with a classic mode and an endless mode.
package torus

// Mode selects how a won game proceeds.
type Mode string

const (
	// ModeClassic stops at the win tile until the player chooses to continue.
	ModeClassic Mode = "classic"
	// ModeEndless keeps playing past the win tile without asking.
	ModeEndless Mode = "endless"
)

// ModeInfo describes a mode for menus and listings.
type ModeInfo struct {
	Mode        Mode
	GameID      string
	Title       string
	Description string
}

// Modes lists the available modes in menu order.
var Modes = []ModeInfo{
	{
		Mode:        ModeClassic,
		GameID:      "torus",
		Title:       "Torus 2048",
		Description: "Reach the win tile, then decide whether to keep going",
	},
	{
		Mode:        ModeEndless,
		GameID:      "torus_endless",
		Title:       "Torus 2048 (Endless)",
		Description: "No win screen, play until the board locks up",
	},
}

// Info returns the description of a mode. Unknown modes describe classic.
func Info(m Mode) ModeInfo {
	for _, info := range Modes {
		if info.Mode == m {
			return info
		}
	}
	return Modes[0]
}

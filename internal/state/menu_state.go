// internal/state/menu_state.go
package state

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"

	"go-survivor/internal/component"
	"go-survivor/internal/config"
	"go-survivor/internal/defs"
	"go-survivor/internal/ui"
	"go-survivor/internal/utils"
)

// MenuState стартовый экран с магазином улучшений и выбор этапа
type MenuState struct {
	sm  *StateMachine
	ctx *Context

	charIdx   int
	stageIdx  int
	weaponIdx int
	message   string
}

func NewMenuState(sm *StateMachine, ctx *Context) *MenuState {
	m := &MenuState{sm: sm, ctx: ctx}
	for i, id := range ctx.Lib.WeaponOrder {
		if id == ctx.Weapon {
			m.weaponIdx = i
		}
	}
	return m
}

func (m *MenuState) Enter() {
	m.message = ""
}

func (m *MenuState) Exit() {}

func (m *MenuState) Update(now time.Time) error {
	switch status := m.ctx.Game.Status(); status {
	case component.StatusStartScreen:
		m.updateStart()
	case component.StatusStageSelect:
		m.updateStageSelect()
	default:
		// Забег уже идёт: экран игры сам разберётся с его состоянием.
		m.sm.SetState(NewGameState(m.sm, m.ctx))
	}
	return nil
}

func (m *MenuState) report(err error) {
	if err != nil {
		m.message = err.Error()
	}
}

func (m *MenuState) startButtons() (play *ui.MenuButton, upgrades []*ui.MenuButton) {
	save := m.ctx.Game.SaveData()
	labels := make([]string, len(m.ctx.Lib.UpgradeOrder))
	for i, id := range m.ctx.Lib.UpgradeOrder {
		labels[i] = fmt.Sprintf("[%d] %s", i+1, m.ctx.Lib.Upgrades[id].Name)
	}
	upgrades = ui.ButtonColumn(labels, config.ScreenWidth, 260, 420, 54, 10, m.ctx.FontFace)
	for i, id := range m.ctx.Lib.UpgradeOrder {
		def := m.ctx.Lib.Upgrades[id]
		st := save.Upgrades[id]
		upgrades[i].Subtext = upgradeStatus(def, st.Level, st.Active)
		upgrades[i].Selected = st.Level > 0 && st.Active
	}
	play = ui.ButtonColumn([]string{"Play [Enter]"}, config.ScreenWidth, 180, 420, 54, 0, m.ctx.FontFace)[0]
	return play, upgrades
}

func upgradeStatus(def *defs.UpgradeDefinition, level int, active bool) string {
	switch {
	case level >= def.MaxLevel && !active:
		return fmt.Sprintf("Lv %d/%d (off)", level, def.MaxLevel)
	case level >= def.MaxLevel:
		return fmt.Sprintf("Lv %d/%d", level, def.MaxLevel)
	case level > 0 && !active:
		return fmt.Sprintf("Lv %d/%d (off), next %d", level, def.MaxLevel, def.Cost)
	}
	return fmt.Sprintf("Lv %d/%d, cost %d", level, def.MaxLevel, def.Cost)
}

func (m *MenuState) updateStart() {
	play, upgrades := m.startButtons()

	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		m.report(m.ctx.Game.OpenStageSelect())
		return
	}
	toggle := ebiten.IsKeyPressed(ebiten.KeyShift)
	for i, id := range m.ctx.Lib.UpgradeOrder {
		if i < len(digitKeys) && inpututil.IsKeyJustPressed(digitKeys[i]) {
			m.shop(id, toggle)
		}
	}

	x, y := ebiten.CursorPosition()
	left := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	right := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight)
	if !left && !right {
		return
	}
	if left && play.IsClicked(x, y) {
		m.report(m.ctx.Game.OpenStageSelect())
		return
	}
	for i, b := range upgrades {
		if b.IsClicked(x, y) {
			m.shop(m.ctx.Lib.UpgradeOrder[i], right)
		}
	}
}

func (m *MenuState) shop(id defs.UpgradeID, toggle bool) {
	if toggle {
		m.report(m.ctx.Game.ToggleUpgrade(id))
		return
	}
	m.message = ""
	m.report(m.ctx.Game.PurchaseUpgrade(id))
}

func (m *MenuState) selectedCharacter() *defs.CharacterDefinition {
	return m.ctx.Lib.Characters[m.ctx.Lib.CharacterOrder[m.charIdx]]
}

func (m *MenuState) updateStageSelect() {
	lib := m.ctx.Lib
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		m.charIdx = cycle(m.charIdx, -1, len(lib.CharacterOrder))
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		m.charIdx = cycle(m.charIdx, 1, len(lib.CharacterOrder))
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		m.stageIdx = cycle(m.stageIdx, -1, len(lib.StageOrder))
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		m.stageIdx = cycle(m.stageIdx, 1, len(lib.StageOrder))
	case inpututil.IsKeyJustPressed(ebiten.KeyTab):
		m.weaponIdx = cycle(m.weaponIdx, 1, len(lib.WeaponOrder))
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		m.report(m.ctx.Game.BackToStart())
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter):
		m.start()
	}
}

func (m *MenuState) start() {
	char := m.selectedCharacter()
	weapon := ""
	if char.InitialWeaponID == "" {
		weapon = m.ctx.Lib.WeaponOrder[m.weaponIdx]
	}
	if err := m.ctx.Game.StartSession(char.ID, weapon, m.ctx.Lib.StageOrder[m.stageIdx]); err != nil {
		m.report(err)
		return
	}
	m.sm.SetState(NewGameState(m.sm, m.ctx))
}

func (m *MenuState) Draw(screen *ebiten.Image) {
	screen.Fill(config.BackgroundColor)
	face := m.ctx.FontFace
	save := m.ctx.Game.SaveData()

	switch m.ctx.Game.Status() {
	case component.StatusStartScreen:
		text.Draw(screen, "SURVIVOR", face, config.ScreenWidth/2-28, 100, config.TextLightColor)
		text.Draw(screen, fmt.Sprintf("Currency: %d", save.Currency), face, config.ScreenWidth/2-50, 130, config.CurrencyColor)
		play, upgrades := m.startButtons()
		play.Draw(screen)
		for _, b := range upgrades {
			b.Draw(screen)
		}
		text.Draw(screen, "[1-5] buy  [Shift+1-5] or right click: toggle", face, 40, config.ScreenHeight-40, config.TextLightColor)
	case component.StatusStageSelect:
		m.drawStageSelect(screen, save.BestTimes, save.CompletedStages)
	}

	if m.message != "" {
		text.Draw(screen, m.message, face, 40, config.ScreenHeight-20, config.HPBarColor)
	}
}

func (m *MenuState) drawStageSelect(screen *ebiten.Image, best map[string]float64, completed map[string]bool) {
	lib := m.ctx.Lib
	face := m.ctx.FontFace

	names := make([]string, len(lib.CharacterOrder))
	for i, id := range lib.CharacterOrder {
		names[i] = lib.Characters[id].Name
	}
	chars := ui.ButtonRow(names, config.ScreenWidth, 160, 160, 70, 12, face)
	for i, b := range chars {
		b.Selected = i == m.charIdx
		if t, ok := best[lib.CharacterOrder[i]]; ok {
			b.Subtext = "best " + utils.FormatTime(t*1000)
		}
		b.Draw(screen)
	}

	char := m.selectedCharacter()
	if char.InitialWeaponID == "" {
		w := lib.Weapons[lib.WeaponOrder[m.weaponIdx]]
		text.Draw(screen, "Weapon [Tab]: "+w.Name, face, config.ScreenWidth/2-80, 260, config.TextLightColor)
	}

	stageNames := make([]string, len(lib.StageOrder))
	for i, id := range lib.StageOrder {
		stageNames[i] = lib.Stages[id].Name
	}
	stages := ui.ButtonColumn(stageNames, config.ScreenWidth, 300, 360, 54, 10, face)
	for i, b := range stages {
		b.Selected = i == m.stageIdx
		if completed[lib.StageOrder[i]] {
			b.Subtext = "cleared"
		}
		b.Draw(screen)
	}

	text.Draw(screen, "[Left/Right] character  [Up/Down] stage  [Enter] start  [Esc] back", face, 40, config.ScreenHeight-40, config.TextLightColor)
}

var digitKeys = []ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4, ebiten.KeyDigit5,
	ebiten.KeyDigit6, ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9,
}

// cycle сдвигает индекс по кругу.
func cycle(i, delta, n int) int {
	if n <= 0 {
		return 0
	}
	return ((i+delta)%n + n) % n
}

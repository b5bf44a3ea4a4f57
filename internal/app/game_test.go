package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-survivor/internal/component"
	"go-survivor/internal/config"
	"go-survivor/internal/defs"
	"go-survivor/internal/event"
	"go-survivor/internal/persistence"
	"go-survivor/internal/system"
	"go-survivor/pkg/utils"
)

type fixedInput struct {
	state component.InputState
}

func (f *fixedInput) ReadInput() component.InputState { return f.state }

type capturePresenter struct {
	snaps []*Snapshot
}

func (c *capturePresenter) Present(s *Snapshot) { c.snaps = append(c.snaps, s) }

func newTestGame(t *testing.T, rec persistence.SaveRecord) (*Game, *persistence.MemoryStore) {
	t.Helper()
	lib, err := defs.Default()
	require.NoError(t, err)
	store := persistence.NewMemoryStore(rec)
	return NewGame(lib, store, &fixedInput{}, 42), store
}

func startRaime(t *testing.T, g *Game) {
	t.Helper()
	require.NoError(t, g.OpenStageSelect())
	require.NoError(t, g.StartSession("raime", "", "forest"))
	require.Equal(t, component.StatusPlaying, g.Status())
}

// placeKiller ставит врага вплотную к игроку с уроном больше его здоровья.
func placeKiller(g *Game) {
	p := g.world.Player
	p.Stats.CurrentHP = 1
	p.InvulnerableUntilMs = 0
	p.LastHitMs = config.NeverHitMs
	g.world.AddEnemy(&component.Enemy{
		TypeID:    "bat",
		Position:  p.Position,
		Size:      20,
		MaxHP:     1e6,
		CurrentHP: 1e6,
		Damage:    50,
		LastHitMs: config.NeverHitMs,
	})
}

func TestStartSessionErrors(t *testing.T) {
	g, _ := newTestGame(t, persistence.DefaultRecord())

	err := g.StartSession("raime", "", "forest")
	assert.ErrorIs(t, err, ErrUnexpectedStatus)

	require.NoError(t, g.OpenStageSelect())

	tests := []struct {
		name      string
		character string
		weapon    string
		stage     string
		want      error
	}{
		{"unknown character", "nobody", "", "forest", defs.ErrUnknownCharacter},
		{"unknown stage", "raime", "", "moon", defs.ErrUnknownStage},
		{"free pick without weapon", "test", "", "forest", defs.ErrMissingStartWeapon},
		{"free pick with unknown weapon", "test", "laser", "forest", defs.ErrUnknownWeapon},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := g.StartSession(tt.character, tt.weapon, tt.stage)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, component.StatusStageSelect, g.Status())
		})
	}
}

func TestStartSessionBuildsPlayer(t *testing.T) {
	g, _ := newTestGame(t, persistence.DefaultRecord())
	require.NoError(t, g.OpenStageSelect())
	require.NoError(t, g.StartSession("test", "spinning_axe", "forest"))

	snap := g.Snapshot()
	require.NotNil(t, snap.Player)
	assert.Equal(t, "test", snap.CharacterID)
	assert.Equal(t, "forest", snap.StageID)
	assert.NotEmpty(t, snap.SessionID)
	assert.Equal(t, 1, snap.Player.Level)
	assert.Equal(t, config.XPBase, snap.Player.XPToNextLevel)
	assert.Equal(t, snap.Player.Stats.MaxHP, snap.Player.Stats.CurrentHP)
	require.Len(t, snap.Player.Weapons, 1)
	assert.Equal(t, "spinning_axe", snap.Player.Weapons[0].ID)
}

func TestTickKeepsPlayerInvariants(t *testing.T) {
	g, _ := newTestGame(t, persistence.DefaultRecord())
	g.SetInput(&fixedInput{state: component.InputState{
		Move: utils.Vector2D{X: 1, Y: 0.5},
		Aim:  utils.Vector2D{X: 1},
	}})
	startRaime(t, g)

	for i := 0; i < 2000; i++ {
		require.NoError(t, g.Tick())

		switch g.Status() {
		case component.StatusLevelUpAttributes:
			require.NoError(t, g.SelectAttribute(component.AttributeInsight))
			snap := g.Snapshot()
			choice := ""
			if len(snap.Options.Weapons) > 0 {
				choice = snap.Options.Weapons[0].ID
			}
			require.NoError(t, g.SelectWeapon(choice))
		case component.StatusGameOver, component.StatusStageComplete:
			return
		}

		p := g.Snapshot().Player
		require.GreaterOrEqual(t, p.Stats.CurrentHP, 0.0)
		require.LessOrEqual(t, p.Stats.CurrentHP, p.Stats.MaxHP)
		require.GreaterOrEqual(t, p.HeroicGauge, 0.0)
		require.LessOrEqual(t, p.HeroicGauge, p.HeroicGaugeMax)
	}
}

func TestLethalContactEndsSession(t *testing.T) {
	g, store := newTestGame(t, persistence.DefaultRecord())
	startRaime(t, g)

	var gameOvers int
	g.EventDispatcher.Subscribe(event.GameOver, event.ListenerFunc(func(event.Event) { gameOvers++ }))

	g.world.Player.SessionCurrency = 40
	placeKiller(g)
	require.NoError(t, g.Tick())

	snap := g.Snapshot()
	assert.Equal(t, component.StatusGameOver, snap.Status)
	assert.Equal(t, 0.0, snap.Player.Stats.CurrentHP)
	assert.Equal(t, 1, gameOvers)

	rec := store.Load()
	assert.Equal(t, 40, rec.Currency)
	assert.InDelta(t, config.TickMs/1000, rec.BestTimes["raime"], 1e-9)
	assert.Equal(t, g.SessionID().String(), rec.LastRunID)
	assert.False(t, rec.CompletedStages["forest"])

	// После конца забега тик ничего не меняет.
	elapsed := snap.ElapsedMs
	require.NoError(t, g.Tick())
	assert.Equal(t, elapsed, g.Snapshot().ElapsedMs)
}

func TestAbortedTickLeavesWorldUntouched(t *testing.T) {
	g, _ := newTestGame(t, persistence.DefaultRecord())
	startRaime(t, g)
	require.NoError(t, g.Tick())

	before := g.world
	elapsed := before.ElapsedMs
	g.world.Player.Weapons = append(g.world.Player.Weapons, component.PlayerWeapon{ID: "no_such_weapon", Level: 1})

	err := g.Tick()
	require.ErrorIs(t, err, ErrTickAborted)
	assert.Same(t, before, g.world)
	assert.Equal(t, elapsed, g.world.ElapsedMs)
	assert.Equal(t, component.StatusPlaying, g.Status())
	assert.Zero(t, g.EventDispatcher.Pending())
}

func TestDoubleLevelUpOffersOneOptionSet(t *testing.T) {
	g, _ := newTestGame(t, persistence.DefaultRecord())
	startRaime(t, g)

	var levelUps int
	g.EventDispatcher.Subscribe(event.LevelUp, event.ListenerFunc(func(event.Event) { levelUps++ }))

	g.world.AddXPOrb(&component.ExperienceOrb{Position: g.world.Player.Position, Size: config.OrbSize, Value: 230})
	require.NoError(t, g.Tick())

	snap := g.Snapshot()
	require.Equal(t, component.StatusLevelUpAttributes, snap.Status)
	assert.Equal(t, 3, snap.Player.Level)
	assert.Equal(t, 2, snap.PendingLevelUps)
	assert.Equal(t, 1, snap.Options.Generation)
	assert.Len(t, snap.Options.Attributes, 4)
	assert.Equal(t, 2, levelUps)

	// Тик не идёт, пока выбор не сделан.
	require.NoError(t, g.Tick())
	assert.Equal(t, snap.ElapsedMs, g.Snapshot().ElapsedMs)

	assert.ErrorIs(t, g.SelectWeapon("fist_of_fury"), ErrUnexpectedStatus)
	assert.ErrorIs(t, g.SelectAttribute("Luck"), system.ErrUnknownAttribute)
	require.NoError(t, g.SelectAttribute(component.AttributeMight))
	require.Equal(t, component.StatusLevelUpWeapons, g.Status())

	assert.ErrorIs(t, g.SelectWeapon("no_such_weapon"), system.ErrOptionNotOffered)
	first := g.Snapshot().Options.Weapons[0].ID
	require.NoError(t, g.SelectWeapon(first))

	snap = g.Snapshot()
	require.Equal(t, component.StatusLevelUpAttributes, snap.Status)
	assert.Equal(t, 1, snap.PendingLevelUps)
	assert.Equal(t, 2, snap.Options.Generation)

	require.NoError(t, g.SelectAttribute(component.AttributeWillpower))
	require.NoError(t, g.SelectWeapon(g.Snapshot().Options.Weapons[0].ID))
	snap = g.Snapshot()
	assert.Equal(t, component.StatusPlaying, snap.Status)
	assert.Zero(t, snap.PendingLevelUps)
	assert.Empty(t, snap.Options.Weapons)
}

func TestPauseSuspendsTicks(t *testing.T) {
	g, _ := newTestGame(t, persistence.DefaultRecord())
	startRaime(t, g)
	require.NoError(t, g.Tick())

	require.NoError(t, g.TogglePause())
	assert.Equal(t, component.StatusPaused, g.Status())
	elapsed := g.Snapshot().ElapsedMs
	require.NoError(t, g.Tick())
	assert.Equal(t, elapsed, g.Snapshot().ElapsedMs)

	assert.ErrorIs(t, g.ActivateHeroic(), ErrUnexpectedStatus)
	require.NoError(t, g.TogglePause())
	require.NoError(t, g.Tick())
	assert.Equal(t, elapsed+config.TickMs, g.Snapshot().ElapsedMs)
}

func TestActivateHeroicNeedsFullGauge(t *testing.T) {
	g, _ := newTestGame(t, persistence.DefaultRecord())
	g.SetInput(&fixedInput{state: component.InputState{Aim: utils.Vector2D{X: 1}}})
	startRaime(t, g)

	assert.ErrorIs(t, g.ActivateHeroic(), ErrHeroicNotReady)
	require.NoError(t, g.Tick())

	g.world.Player.HeroicGauge = g.world.Player.HeroicGaugeMax
	assert.True(t, g.Snapshot().HeroicReady)
	require.NoError(t, g.ActivateHeroic())

	snap := g.Snapshot()
	assert.Zero(t, snap.Player.HeroicGauge)
	heroic := 0
	for _, p := range snap.Projectiles {
		if p.Heroic {
			heroic++
			assert.True(t, p.Piercing)
		}
	}
	assert.Equal(t, 1, heroic)
}

func TestStageCompleteRecordsProgress(t *testing.T) {
	g, store := newTestGame(t, persistence.DefaultRecord())
	startRaime(t, g)

	var cleared int
	g.EventDispatcher.Subscribe(event.StageCleared, event.ListenerFunc(func(event.Event) { cleared++ }))

	stage, err := g.Lib.Stage("forest")
	require.NoError(t, err)
	g.world.ElapsedMs = stage.DurationMs() - config.TickMs
	require.NoError(t, g.Tick())

	assert.Equal(t, component.StatusStageComplete, g.Status())
	assert.Equal(t, 1, cleared)
	rec := store.Load()
	assert.True(t, rec.CompletedStages["forest"])
	assert.InDelta(t, stage.DurationSec, rec.BestTimes["raime"], 1e-9)

	require.NoError(t, g.BackToStart())
	assert.Equal(t, component.StatusStartScreen, g.Status())
	assert.Nil(t, g.Snapshot().Player)
}

func TestReviveOncePerSession(t *testing.T) {
	rec := persistence.DefaultRecord()
	rec.Currency = 10000
	g, store := newTestGame(t, rec)

	require.NoError(t, g.PurchaseUpgrade(defs.UpgradeRevive))
	assert.Zero(t, store.Load().Currency)
	startRaime(t, g)

	var revived int
	g.EventDispatcher.Subscribe(event.Revived, event.ListenerFunc(func(event.Event) { revived++ }))

	g.world.Player.SessionCurrency = 30
	placeKiller(g)
	require.NoError(t, g.Tick())
	require.Equal(t, component.StatusGameOver, g.Status())
	assert.True(t, g.Snapshot().ReviveAvailable)
	assert.Equal(t, 30, store.Load().Currency)

	require.NoError(t, g.Revive())
	snap := g.Snapshot()
	assert.Equal(t, component.StatusPlaying, snap.Status)
	assert.Equal(t, snap.Player.Stats.MaxHP, snap.Player.Stats.CurrentHP)
	assert.Equal(t, snap.ElapsedMs+config.ReviveInvulnerabilityMs, snap.Player.InvulnerableUntilMs)
	assert.Empty(t, snap.Enemies, "enemies near the player are cleared")
	assert.Equal(t, 1, revived)

	g.world.Player.SessionCurrency = 50
	placeKiller(g)
	require.NoError(t, g.Tick())
	require.Equal(t, component.StatusGameOver, g.Status())
	assert.ErrorIs(t, g.Revive(), ErrReviveUnavailable)
	assert.Equal(t, 50, store.Load().Currency, "only the new currency is banked")
}

func TestShop(t *testing.T) {
	rec := persistence.DefaultRecord()
	rec.Currency = 12000
	g, store := newTestGame(t, rec)

	assert.ErrorIs(t, g.ToggleUpgrade(defs.UpgradeSpeed), ErrUpgradeNotOwned)
	assert.ErrorIs(t, g.PurchaseUpgrade("wings"), defs.ErrUnknownUpgrade)

	require.NoError(t, g.PurchaseUpgrade(defs.UpgradeRevive))
	assert.ErrorIs(t, g.PurchaseUpgrade(defs.UpgradeRevive), ErrUpgradeMaxed)
	assert.ErrorIs(t, g.PurchaseUpgrade(defs.UpgradeSpeed), ErrNotEnoughCurrency)

	require.NoError(t, g.ToggleUpgrade(defs.UpgradeRevive))
	_, active := store.Load().Upgrade(defs.UpgradeRevive)
	assert.False(t, active)
	assert.Equal(t, 2000, g.SaveData().Currency)

	startRaime(t, g)
	assert.ErrorIs(t, g.PurchaseUpgrade(defs.UpgradeSpeed), ErrShopClosed)
}

func TestMetaUpgradesApplyAtSessionStart(t *testing.T) {
	rec := persistence.DefaultRecord()
	rec.Upgrades[defs.UpgradeSpeed] = persistence.UpgradeState{Level: 2, Active: true}
	rec.Upgrades[defs.UpgradeDamage] = persistence.UpgradeState{Level: 1, Active: true}
	rec.Upgrades[defs.UpgradeProjSpeed] = persistence.UpgradeState{Level: 3, Active: false}
	g, _ := newTestGame(t, rec)
	startRaime(t, g)

	char, err := g.Lib.Character("raime")
	require.NoError(t, err)
	p := g.Snapshot().Player
	assert.InDelta(t, char.InitialStats.MoveSpeed*1.10, p.Stats.MoveSpeed, 1e-9)
	assert.InDelta(t, char.InitialStats.DamageMultiplier*1.05, p.Stats.DamageMultiplier, 1e-9)
	assert.InDelta(t, char.InitialStats.ProjectileSpeedMultiplier, p.Stats.ProjectileSpeedMultiplier, 1e-9)
}

func TestPresenterAndListenersRunAfterCommit(t *testing.T) {
	g, _ := newTestGame(t, persistence.DefaultRecord())
	pres := &capturePresenter{}
	g.AddPresenter(pres)

	// Подписчик читает Game изнутри рассылки: блокировка уже снята.
	var seen []component.GameStatus
	g.EventDispatcher.Subscribe(event.StatusChanged, event.ListenerFunc(func(event.Event) {
		seen = append(seen, g.Status())
	}))

	startRaime(t, g)
	require.NoError(t, g.Tick())

	assert.Equal(t, []component.GameStatus{component.StatusStageSelect, component.StatusPlaying}, seen)
	require.NotEmpty(t, pres.snaps)
	last := pres.snaps[len(pres.snaps)-1]
	assert.Equal(t, config.TickMs, last.ElapsedMs)

	// Снапшот не разделяет память с миром.
	last.Player.Stats.CurrentHP = -5
	assert.NotEqual(t, -5.0, g.Snapshot().Player.Stats.CurrentHP)
}

func TestRestartStartsFreshRun(t *testing.T) {
	g, _ := newTestGame(t, persistence.DefaultRecord())
	startRaime(t, g)
	first := g.SessionID()

	placeKiller(g)
	require.NoError(t, g.Tick())
	require.Equal(t, component.StatusGameOver, g.Status())

	require.NoError(t, g.Restart())
	snap := g.Snapshot()
	assert.Equal(t, component.StatusPlaying, snap.Status)
	assert.NotEqual(t, first, g.SessionID())
	assert.Zero(t, snap.ElapsedMs)
	assert.Empty(t, snap.Enemies)
}

func TestExperienceCollectedOnDeathTickIsKept(t *testing.T) {
	rec := persistence.DefaultRecord()
	rec.Currency = 10000
	g, _ := newTestGame(t, rec)
	require.NoError(t, g.PurchaseUpgrade(defs.UpgradeRevive))
	startRaime(t, g)

	placeKiller(g)
	g.world.AddXPOrb(&component.ExperienceOrb{Position: g.world.Player.Position, Size: config.OrbSize, Value: 5})
	require.NoError(t, g.Tick())

	snap := g.Snapshot()
	require.Equal(t, component.StatusGameOver, snap.Status)
	assert.Empty(t, snap.XPOrbs)
	assert.Equal(t, 5.0, snap.Player.XP)
}

func TestLevelUpFromDeathTickOpensAfterRevive(t *testing.T) {
	rec := persistence.DefaultRecord()
	rec.Currency = 10000
	g, _ := newTestGame(t, rec)
	require.NoError(t, g.PurchaseUpgrade(defs.UpgradeRevive))
	startRaime(t, g)

	placeKiller(g)
	g.world.AddXPOrb(&component.ExperienceOrb{Position: g.world.Player.Position, Size: config.OrbSize, Value: 230})
	require.NoError(t, g.Tick())

	snap := g.Snapshot()
	require.Equal(t, component.StatusGameOver, snap.Status)
	assert.Equal(t, 3, snap.Player.Level)
	assert.Equal(t, 2, snap.PendingLevelUps)

	require.NoError(t, g.Revive())
	snap = g.Snapshot()
	assert.Equal(t, component.StatusLevelUpAttributes, snap.Status)
	assert.Equal(t, 2, snap.PendingLevelUps)
	assert.NotEmpty(t, snap.Options.Attributes)
}

func TestRestartDropsPendingSpawns(t *testing.T) {
	g, _ := newTestGame(t, persistence.DefaultRecord())
	startRaime(t, g)

	g.world.PendingSpawns = nil
	g.stage = &defs.StageDefinition{
		ID:          g.stage.ID,
		DurationSec: g.stage.DurationSec,
		SpawnWaves: []defs.SpawnWave{
			{TimeSec: 0, EnemyTypeID: "bat", Count: 5, IntervalMs: 1000},
		},
	}
	require.NoError(t, g.Tick())
	require.Len(t, g.world.PendingSpawns, 5, "the wave is queued after this tick's drain")

	placeKiller(g)
	require.NoError(t, g.Tick())
	require.Equal(t, component.StatusGameOver, g.Status())

	require.NoError(t, g.Restart())
	assert.Empty(t, g.world.PendingSpawns)
	assert.Zero(t, g.world.NextWaveIndex)
}

type countingInput struct {
	reads int
	aim   utils.Vector2D
}

func (c *countingInput) ReadInput() component.InputState {
	c.reads++
	return component.InputState{Aim: c.aim}
}

func TestInputIsReadOncePerTick(t *testing.T) {
	g, _ := newTestGame(t, persistence.DefaultRecord())
	in := &countingInput{aim: utils.Vector2D{X: 0, Y: -1}}
	g.SetInput(in)
	startRaime(t, g)

	require.NoError(t, g.Tick())
	require.Equal(t, 1, in.reads)

	g.world.Player.HeroicGauge = g.world.Player.HeroicGaugeMax
	require.NoError(t, g.ActivateHeroic())
	assert.Equal(t, 1, in.reads, "heroic uses the aim of the last tick")

	require.NoError(t, g.Tick())
	assert.Equal(t, 2, in.reads)
}

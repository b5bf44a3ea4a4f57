// internal/app/game.go
package app

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"go-survivor/internal/component"
	"go-survivor/internal/config"
	"go-survivor/internal/defs"
	"go-survivor/internal/entity"
	"go-survivor/internal/event"
	"go-survivor/internal/persistence"
	"go-survivor/internal/system"
	"go-survivor/internal/utils"
	vec "go-survivor/pkg/utils"
)

var (
	ErrTickAborted       = errors.New("tick aborted")
	ErrNoSession         = errors.New("no active session")
	ErrHeroicNotReady    = errors.New("heroic skill not ready")
	ErrReviveUnavailable = errors.New("revive unavailable")
	ErrNotEnoughCurrency = errors.New("not enough currency")
	ErrUpgradeMaxed      = errors.New("upgrade already at max level")
	ErrUpgradeNotOwned   = errors.New("upgrade not owned")
	ErrShopClosed        = errors.New("shop is only available outside a session")
	ErrNoWeaponToSkip    = errors.New("weapon options are available")
	ErrUnexpectedStatus  = errors.New("command not allowed in current status")
	errSessionNotStarted = fmt.Errorf("%w: start a session first", ErrNoSession)
)

// InputReader отдаёт состояние ввода; читается один раз за тик.
type InputReader interface {
	ReadInput() component.InputState
}

// Presenter получает снапшот после каждого зафиксированного тика и смены состояния.
type Presenter interface {
	Present(*Snapshot)
}

// Game holds the session state and runs the tick pipeline.
type Game struct {
	mu sync.Mutex

	Lib             *defs.Library
	EventDispatcher *event.Dispatcher
	Rng             *utils.PRNGService
	Registry        *system.WeaponRegistry

	PlayerSystem       *system.PlayerSystem
	WeaponSystem       *system.WeaponSystem
	TurretSystem       *system.TurretSystem
	ProjectileSystem   *system.ProjectileSystem
	SpawnSystem        *system.SpawnSystem
	CombatSystem       *system.CombatSystem
	OrbSystem          *system.OrbSystem
	LevelUpSystem      *system.LevelUpSystem
	HeroicSystem       *system.HeroicSystem
	StateSystem        *system.StateSystem
	VisualEffectSystem *system.VisualEffectSystem

	store      persistence.Store
	save       persistence.SaveRecord
	input      InputReader
	lastInput  component.InputState // ввод последнего тика
	presenters []Presenter

	world     *entity.ECS
	sessionID uuid.UUID
	character *defs.CharacterDefinition
	stage     *defs.StageDefinition
	duplicate bool
}

// NewGame initializes a new game instance on the start screen.
func NewGame(lib *defs.Library, store persistence.Store, input InputReader, seed int64) *Game {
	dispatcher := event.NewDispatcher()
	rng := utils.NewPRNGService(seed)
	registry := system.NewWeaponRegistry()

	g := &Game{
		Lib:                lib,
		EventDispatcher:    dispatcher,
		Rng:                rng,
		Registry:           registry,
		PlayerSystem:       system.NewPlayerSystem(dispatcher),
		WeaponSystem:       system.NewWeaponSystem(lib, registry, rng),
		TurretSystem:       system.NewTurretSystem(lib),
		ProjectileSystem:   system.NewProjectileSystem(),
		SpawnSystem:        system.NewSpawnSystem(lib, dispatcher, rng),
		CombatSystem:       system.NewCombatSystem(lib, dispatcher, rng),
		OrbSystem:          system.NewOrbSystem(),
		LevelUpSystem:      system.NewLevelUpSystem(lib, rng),
		HeroicSystem:       system.NewHeroicSystem(lib, dispatcher),
		StateSystem:        system.NewStateSystem(dispatcher),
		VisualEffectSystem: system.NewVisualEffectSystem(),
		store:              store,
		save:               store.Load(),
		input:              input,
		world:              entity.NewECS(),
	}
	return g
}

// AddPresenter подписывает получателя снапшотов.
func (g *Game) AddPresenter(p Presenter) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.presenters = append(g.presenters, p)
}

// SetInput заменяет источник ввода.
func (g *Game) SetInput(input InputReader) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.input = input
}

// Status возвращает текущее состояние сессии.
func (g *Game) Status() component.GameStatus {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.world.Status
}

// SessionID возвращает ID текущего забега; uuid.Nil до первого старта.
func (g *Game) SessionID() uuid.UUID {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.sessionID
}

// SaveData возвращает копию сохранения.
func (g *Game) SaveData() persistence.SaveRecord {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.save.Clone()
}

// Snapshot возвращает копию зафиксированного мира.
func (g *Game) Snapshot() *Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshotLocked()
}

func (g *Game) snapshotLocked() *Snapshot {
	return newSnapshot(g.world, g.sessionID, g.character, g.stage, g.save, g.HeroicSystem, g.reviveAvailable(g.world))
}

// OpenStageSelect переводит стартовый экран к выбору этапа.
func (g *Game) OpenStageSelect() error {
	return g.command(func(w *entity.ECS) error {
		return g.StateSystem.Transition(w, component.StatusStageSelect)
	})
}

// BackToStart возвращает на стартовый экран. Мир сессии сбрасывается целиком,
// вместе с отложенными появлениями врагов.
func (g *Game) BackToStart() error {
	g.mu.Lock()
	if !system.CanTransition(g.world.Status, component.StatusStartScreen) {
		from := g.world.Status
		g.mu.Unlock()
		return fmt.Errorf("%w: %s -> %s", system.ErrInvalidTransition, from, component.StatusStartScreen)
	}
	next := entity.NewECS()
	g.EventDispatcher.Enqueue(event.Event{Type: event.StatusChanged, Data: next.Status})
	g.world = next
	g.character = nil
	g.stage = nil
	g.duplicate = false
	events, snap, presenters := g.EventDispatcher.Take(), g.snapshotLocked(), g.presentersLocked()
	g.mu.Unlock()

	g.publish(events, snap, presenters)
	return nil
}

// StartSession проверяет выбор игрока и запускает новый забег.
// weaponID нужен только персонажу без собственного стартового оружия.
func (g *Game) StartSession(characterID, weaponID, stageID string) error {
	g.mu.Lock()
	if g.world.Status != component.StatusStageSelect {
		status := g.world.Status
		g.mu.Unlock()
		return fmt.Errorf("%w: cannot start a session from %s", ErrUnexpectedStatus, status)
	}
	char, stage, weapon, err := g.resolveSession(characterID, weaponID, stageID)
	if err != nil {
		g.mu.Unlock()
		log.Printf("Session not started: %v", err)
		return err
	}

	next := entity.NewECS()
	next.Status = component.StatusStageSelect
	next.Player = g.newPlayer(char, weapon)
	if err := g.StateSystem.Transition(next, component.StatusPlaying); err != nil {
		g.mu.Unlock()
		return err
	}

	g.world = next
	g.character = char
	g.stage = stage
	g.duplicate = g.upgradeActive(defs.UpgradeDuplicator)
	g.lastInput = component.InputState{}
	g.sessionID = uuid.New()
	log.Printf("Session %s started: character=%s weapon=%s stage=%s", g.sessionID, char.ID, weapon.ID, stage.ID)

	events, snap, presenters := g.EventDispatcher.Take(), g.snapshotLocked(), g.presentersLocked()
	g.mu.Unlock()

	g.publish(events, snap, presenters)
	return nil
}

// Restart запускает новый забег с тем же персонажем и этапом.
func (g *Game) Restart() error {
	g.mu.Lock()
	char, stage := g.character, g.stage
	var weaponID string
	if char != nil && char.InitialWeaponID == "" && g.world.Player != nil && len(g.world.Player.Weapons) > 0 {
		weaponID = g.world.Player.Weapons[0].ID
	}
	g.mu.Unlock()
	if char == nil || stage == nil {
		return errSessionNotStarted
	}

	if err := g.BackToStart(); err != nil {
		return err
	}
	if err := g.OpenStageSelect(); err != nil {
		return err
	}
	return g.StartSession(char.ID, weaponID, stage.ID)
}

func (g *Game) resolveSession(characterID, weaponID, stageID string) (*defs.CharacterDefinition, *defs.StageDefinition, *defs.WeaponDefinition, error) {
	char, err := g.Lib.Character(characterID)
	if err != nil {
		return nil, nil, nil, err
	}
	stage, err := g.Lib.Stage(stageID)
	if err != nil {
		return nil, nil, nil, err
	}
	if !char.Heroic.IsKnown() {
		return nil, nil, nil, fmt.Errorf("character %s: %w: %q", char.ID, defs.ErrUnknownHeroic, char.Heroic)
	}

	startID := char.InitialWeaponID
	if startID == "" {
		if weaponID == "" {
			return nil, nil, nil, fmt.Errorf("character %s: %w", char.ID, defs.ErrMissingStartWeapon)
		}
		startID = weaponID
	}
	weapon, err := g.Lib.Weapon(startID)
	if err != nil {
		return nil, nil, nil, err
	}
	for _, id := range g.Lib.WeaponOrder {
		if err := g.Registry.Check(g.Lib.Weapons[id]); err != nil {
			return nil, nil, nil, err
		}
	}
	return char, stage, weapon, nil
}

func (g *Game) newPlayer(char *defs.CharacterDefinition, weapon *defs.WeaponDefinition) *component.Player {
	base := char.InitialStats
	p := &component.Player{
		Size:        config.PlayerSize,
		CharacterID: char.ID,
		Stats: component.PlayerStats{
			MaxHP:                     base.MaxHP,
			CurrentHP:                 base.MaxHP,
			MoveSpeed:                 base.MoveSpeed * g.upgradeFactor(defs.UpgradeSpeed),
			Defense:                   base.Defense,
			DamageMultiplier:          base.DamageMultiplier * g.upgradeFactor(defs.UpgradeDamage),
			ProjectileSpeedMultiplier: base.ProjectileSpeedMultiplier * g.upgradeFactor(defs.UpgradeProjSpeed),
			XPMultiplier:              base.XPMultiplier,
		},
		Level:          1,
		XPToNextLevel:  config.XPBase,
		LastHitMs:      config.NeverHitMs,
		HeroicGaugeMax: char.HeroicGaugeMax,
	}
	system.GrantWeapon(p, weapon)
	return p
}

func (g *Game) upgradeActive(id defs.UpgradeID) bool {
	_, active := g.save.Upgrade(id)
	return active
}

// upgradeFactor множитель мета-улучшения: +5% за уровень, если оно включено.
func (g *Game) upgradeFactor(id defs.UpgradeID) float64 {
	st, active := g.save.Upgrade(id)
	if !active {
		return 1
	}
	return 1 + config.UpgradePercentPerLevel*float64(st.Level)
}

// Tick продвигает симуляцию на один шаг. Вне Playing ничего не делает.
// Паника внутри шага отменяет тик целиком: мир, события и состояние не меняются.
func (g *Game) Tick() error {
	events, snap, presenters, err := g.tick()
	if err != nil {
		return err
	}
	if snap != nil {
		g.publish(events, snap, presenters)
	}
	return nil
}

func (g *Game) tick() (events []event.Event, snap *Snapshot, presenters []Presenter, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.world.Status != component.StatusPlaying {
		return nil, nil, nil, nil
	}

	defer func() {
		if r := recover(); r != nil {
			g.EventDispatcher.Discard()
			err = fmt.Errorf("%w: %v", ErrTickAborted, r)
			log.Printf("Session %s: %v", g.sessionID, err)
		}
	}()

	var input component.InputState
	if g.input != nil {
		input = g.input.ReadInput()
	}
	g.lastInput = input

	next := g.world.Clone()
	g.step(next, input)
	g.commit(next)

	return g.EventDispatcher.Take(), g.snapshotLocked(), g.presentersLocked(), nil
}

func (g *Game) step(w *entity.ECS, input component.InputState) {
	w.ElapsedMs += config.TickMs
	w.LevelsGained = 0

	g.SpawnSystem.Drain(w)
	g.PlayerSystem.Update(w, input)
	g.WeaponSystem.Update(w, g.character, input.Aim, g.duplicate)
	g.TurretSystem.Update(w)
	g.ProjectileSystem.Update(w, g.companionSpeed(w))
	g.SpawnSystem.Sweep(w, g.stage)

	result := g.CombatSystem.Update(w)
	xp := g.OrbSystem.Update(w)

	// Опыт зачисляется и в тик смерти; выбор улучшений откроется после возрождения.
	g.PlayerSystem.GainExperience(w, xp)
	switch {
	case result.PlayerDied:
		g.mustTransition(w, component.StatusGameOver)
		g.EventDispatcher.Enqueue(event.Event{Type: event.GameOver, Data: w.ElapsedMs})
	case w.LevelsGained > 0:
		g.openLevelUp(w)
	}

	g.VisualEffectSystem.Update(w)

	if w.Status == component.StatusPlaying && w.ElapsedMs >= g.stage.DurationMs() {
		g.mustTransition(w, component.StatusStageComplete)
		g.EventDispatcher.Enqueue(event.Event{Type: event.StageCleared, Data: g.stage.ID})
	}
}

func (g *Game) openLevelUp(w *entity.ECS) {
	g.LevelUpSystem.GenerateOptions(w)
	g.mustTransition(w, component.StatusLevelUpAttributes)
}

func (g *Game) companionSpeed(w *entity.ECS) float64 {
	if w.Player != nil && w.Player.HeroicActive {
		return g.character.CompanionSpeedMultiplier()
	}
	return 1
}

func (g *Game) mustTransition(w *entity.ECS, to component.GameStatus) {
	if err := g.StateSystem.Transition(w, to); err != nil {
		panic(err)
	}
}

// commit фиксирует мир и, если забег закончился, записывает результат.
func (g *Game) commit(next *entity.ECS) {
	ended := next.Status != g.world.Status &&
		(next.Status == component.StatusGameOver || next.Status == component.StatusStageComplete)
	if ended {
		g.recordRun(next)
	}
	g.world = next
}

// recordRun переносит в сохранение ещё не учтённую валюту, лучшее время
// и пройденный этап.
func (g *Game) recordRun(w *entity.ECS) {
	rec := g.save.Clone()
	p := w.Player
	if delta := p.SessionCurrency - w.BankedCurrency; delta > 0 {
		rec.Currency += delta
		w.BankedCurrency = p.SessionCurrency
	}
	seconds := w.ElapsedMs / 1000
	if seconds > rec.BestTimes[p.CharacterID] {
		rec.BestTimes[p.CharacterID] = seconds
	}
	if w.Status == component.StatusStageComplete {
		rec.CompletedStages[g.stage.ID] = true
	}
	rec.LastRunID = g.sessionID.String()

	g.save = rec
	g.persist()
	log.Printf("Session %s ended: %s after %s, kills=%d, currency=%d",
		g.sessionID, w.Status, utils.FormatTime(w.ElapsedMs), w.Kills, p.SessionCurrency)
}

func (g *Game) persist() {
	if err := g.store.Save(g.save); err != nil {
		log.Printf("Failed to save progress: %v", err)
	}
}

// ActivateHeroic применяет героическое умение, если шкала заполнена.
// Направление берётся из ввода последнего тика.
func (g *Game) ActivateHeroic() error {
	return g.command(func(w *entity.ECS) error {
		if w.Status != component.StatusPlaying {
			return fmt.Errorf("%w: heroic skill in %s", ErrUnexpectedStatus, w.Status)
		}
		if !g.HeroicSystem.Activate(w, g.character, g.lastInput.Aim) {
			return ErrHeroicNotReady
		}
		return nil
	})
}

// SelectAttribute применяет выбранную характеристику и открывает выбор оружия.
func (g *Game) SelectAttribute(attr component.Attribute) error {
	return g.command(func(w *entity.ECS) error {
		if w.Status != component.StatusLevelUpAttributes {
			return fmt.Errorf("%w: attribute selection in %s", ErrUnexpectedStatus, w.Status)
		}
		if err := g.LevelUpSystem.ApplyAttribute(w, attr); err != nil {
			return err
		}
		return g.StateSystem.Transition(w, component.StatusLevelUpWeapons)
	})
}

// SelectWeapon применяет выбор оружия. Пустой weaponID допустим, только если
// вариантов оружия нет. Оставшиеся повышения уровня получают новый набор вариантов.
func (g *Game) SelectWeapon(weaponID string) error {
	return g.command(func(w *entity.ECS) error {
		if w.Status != component.StatusLevelUpWeapons {
			return fmt.Errorf("%w: weapon selection in %s", ErrUnexpectedStatus, w.Status)
		}
		if weaponID == "" {
			if len(w.Options.Weapons) > 0 {
				return ErrNoWeaponToSkip
			}
		} else if err := g.LevelUpSystem.ApplyWeapon(w, weaponID); err != nil {
			return err
		}

		w.PendingLevelUps = max(0, w.PendingLevelUps-1)
		if w.PendingLevelUps > 0 {
			g.LevelUpSystem.GenerateOptions(w)
			return g.StateSystem.Transition(w, component.StatusLevelUpAttributes)
		}
		w.Options = component.LevelUpOptions{Generation: w.Options.Generation}
		return g.StateSystem.Transition(w, component.StatusPlaying)
	})
}

// Pause приостанавливает забег.
func (g *Game) Pause() error {
	return g.command(func(w *entity.ECS) error {
		return g.StateSystem.Transition(w, component.StatusPaused)
	})
}

// Resume продолжает приостановленный забег.
func (g *Game) Resume() error {
	return g.command(func(w *entity.ECS) error {
		if w.Status != component.StatusPaused {
			return fmt.Errorf("%w: resume from %s", ErrUnexpectedStatus, w.Status)
		}
		return g.StateSystem.Transition(w, component.StatusPlaying)
	})
}

// TogglePause переключает паузу.
func (g *Game) TogglePause() error {
	if g.Status() == component.StatusPaused {
		return g.Resume()
	}
	return g.Pause()
}

func (g *Game) reviveAvailable(w *entity.ECS) bool {
	return w.Status == component.StatusGameOver && w.Player != nil &&
		!w.ReviveUsed && g.upgradeActive(defs.UpgradeRevive)
}

// Revive возвращает игрока в бой один раз за забег.
func (g *Game) Revive() error {
	return g.command(func(w *entity.ECS) error {
		if !g.reviveAvailable(w) {
			return ErrReviveUnavailable
		}
		p := w.Player
		p.Stats.CurrentHP = p.Stats.MaxHP
		p.InvulnerableUntilMs = w.ElapsedMs + config.ReviveInvulnerabilityMs
		w.Enemies = entity.Filter(w.Enemies, func(e *component.Enemy) bool {
			return vec.Distance(e.Position, p.Position) > config.ReviveClearRadius
		})
		w.ReviveUsed = true
		g.EventDispatcher.Enqueue(event.Event{Type: event.Revived, Data: w.ElapsedMs})
		log.Printf("Session %s: player revived", g.sessionID)
		if err := g.StateSystem.Transition(w, component.StatusPlaying); err != nil {
			return err
		}
		if w.PendingLevelUps > 0 {
			g.openLevelUp(w)
		}
		return nil
	})
}

// PurchaseUpgrade покупает следующий уровень мета-улучшения за сохранённую валюту.
func (g *Game) PurchaseUpgrade(id defs.UpgradeID) error {
	return g.shop(func(rec *persistence.SaveRecord) error {
		def, err := g.Lib.Upgrade(id)
		if err != nil {
			return err
		}
		st := rec.Upgrades[id]
		if st.Level >= def.MaxLevel {
			return fmt.Errorf("%w: %s", ErrUpgradeMaxed, id)
		}
		if rec.Currency < def.Cost {
			return fmt.Errorf("%w: %s costs %d, have %d", ErrNotEnoughCurrency, id, def.Cost, rec.Currency)
		}
		rec.Currency -= def.Cost
		st.Level++
		st.Active = true
		rec.Upgrades[id] = st
		log.Printf("Upgrade %s purchased, level %d", id, st.Level)
		return nil
	})
}

// ToggleUpgrade включает или выключает купленное мета-улучшение.
func (g *Game) ToggleUpgrade(id defs.UpgradeID) error {
	return g.shop(func(rec *persistence.SaveRecord) error {
		if _, err := g.Lib.Upgrade(id); err != nil {
			return err
		}
		st, ok := rec.Upgrades[id]
		if !ok || st.Level == 0 {
			return fmt.Errorf("%w: %s", ErrUpgradeNotOwned, id)
		}
		st.Active = !st.Active
		rec.Upgrades[id] = st
		return nil
	})
}

func (g *Game) shop(fn func(rec *persistence.SaveRecord) error) error {
	g.mu.Lock()
	status := g.world.Status
	if status != component.StatusStartScreen && status != component.StatusStageSelect {
		g.mu.Unlock()
		return ErrShopClosed
	}
	rec := g.save.Clone()
	if err := fn(&rec); err != nil {
		g.mu.Unlock()
		return err
	}
	g.save = rec
	g.persist()
	snap, presenters := g.snapshotLocked(), g.presentersLocked()
	g.mu.Unlock()

	g.publish(nil, snap, presenters)
	return nil
}

// command выполняет команду игрока над копией мира и фиксирует её только без ошибки.
func (g *Game) command(fn func(w *entity.ECS) error) error {
	g.mu.Lock()
	if g.world.Player == nil && g.world.Status != component.StatusStartScreen && g.world.Status != component.StatusStageSelect {
		g.mu.Unlock()
		return errSessionNotStarted
	}
	next := g.world.Clone()
	if err := fn(next); err != nil {
		g.EventDispatcher.Discard()
		g.mu.Unlock()
		return err
	}
	g.commit(next)
	events, snap, presenters := g.EventDispatcher.Take(), g.snapshotLocked(), g.presentersLocked()
	g.mu.Unlock()

	g.publish(events, snap, presenters)
	return nil
}

func (g *Game) presentersLocked() []Presenter {
	return append([]Presenter(nil), g.presenters...)
}

// publish рассылает события и снапшот уже без блокировки,
// чтобы подписчики могли обращаться к Game.
func (g *Game) publish(events []event.Event, snap *Snapshot, presenters []Presenter) {
	g.EventDispatcher.Deliver(events)
	for _, p := range presenters {
		p.Present(snap)
	}
}

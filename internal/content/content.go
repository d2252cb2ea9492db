// Package content holds the static game tables: cards, monsters, artifacts
// and preset heroes. Tables are embedded YAML, validated once at load and
// read-only afterwards.
package content

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/rpg-clash/internal/engine/cards"
	"github.com/KirkDiggler/rpg-clash/internal/engine/effects"
	"github.com/KirkDiggler/rpg-clash/internal/entities"
	"github.com/KirkDiggler/rpg-clash/internal/errors"
)

//go:embed data/*.yaml
var embedded embed.FS

const (
	fileCards     = "data/cards.yaml"
	fileMonsters  = "data/monsters.yaml"
	fileArtifacts = "data/artifacts.yaml"
	fileHeroes    = "data/heroes.yaml"
)

type dieDoc struct {
	Type   string `yaml:"type"`
	Min    int    `yaml:"min"`
	Max    int    `yaml:"max"`
	Effect string `yaml:"effect"`
}

type cardDoc struct {
	Name       string   `yaml:"name"`
	Family     string   `yaml:"family"`
	Dice       []dieDoc `yaml:"dice"`
	UnitCost   int      `yaml:"unit_cost"`
	MaxBonus   int      `yaml:"max_bonus"`
	Offset     int      `yaml:"offset"`
	MentalCost int      `yaml:"mental_cost"`
	Bonus      int      `yaml:"bonus"`
	CritBonus  int      `yaml:"crit_bonus"`
}

// MonsterDef is a monster template
type MonsterDef struct {
	ID          string           `yaml:"id"`
	Name        string           `yaml:"name"`
	HP          int              `yaml:"hp"`
	Mental      int              `yaml:"mental"`
	Attack      int              `yaml:"attack"`
	Defense     int              `yaml:"defense"`
	DefenseRate int              `yaml:"defense_rate"`
	Pattern     entities.Pattern `yaml:"pattern"`
	Deck        []string         `yaml:"deck"`
	Artifact    string           `yaml:"artifact"`
}

type heroDoc struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	HP          int      `yaml:"hp"`
	Mental      int      `yaml:"mental"`
	Attack      int      `yaml:"attack"`
	Defense     int      `yaml:"defense"`
	DefenseRate int      `yaml:"defense_rate"`
	Currency    int      `yaml:"currency"`
	Cards       []string `yaml:"cards"`
	Artifact    string   `yaml:"artifact"`
	Engraved    string   `yaml:"engraved"`
}

// Registry is the validated, immutable set of content tables.
type Registry struct {
	cards     map[string]cards.Card
	monsters  map[string]*MonsterDef
	artifacts map[string]*entities.Artifact
	heroes    map[string]*heroDoc
}

// Load reads the embedded tables
func Load() (*Registry, error) {
	return LoadFS(embedded)
}

// LoadFS reads the tables from fsys, which must hold the four data files.
// Every problem found is reported in one InvalidArgument error.
func LoadFS(fsys fs.FS) (*Registry, error) {
	var cardsFile struct {
		Cards []cardDoc `yaml:"cards"`
	}
	var monstersFile struct {
		Monsters []*MonsterDef `yaml:"monsters"`
	}
	var artifactsFile struct {
		Artifacts []*entities.Artifact `yaml:"artifacts"`
	}
	var heroesFile struct {
		Heroes []*heroDoc `yaml:"heroes"`
	}

	for path, out := range map[string]any{
		fileCards:     &cardsFile,
		fileMonsters:  &monstersFile,
		fileArtifacts: &artifactsFile,
		fileHeroes:    &heroesFile,
	} {
		if err := decode(fsys, path, out); err != nil {
			return nil, err
		}
	}

	r := &Registry{
		cards:     make(map[string]cards.Card),
		monsters:  make(map[string]*MonsterDef),
		artifacts: make(map[string]*entities.Artifact),
		heroes:    make(map[string]*heroDoc),
	}
	vb := errors.NewValidationBuilder()

	for _, a := range artifactsFile.Artifacts {
		field := fmt.Sprintf("artifacts[%s]", a.ID)
		if a.ID == "" {
			vb.RequiredField("artifacts.id")
			continue
		}
		if _, dup := r.artifacts[a.ID]; dup {
			vb.Field(field, "duplicate id")
		}
		if a.Special != entities.SpecialNone && !knownSpecial(a.Special) {
			vb.Fieldf(field, "unknown special %q", a.Special)
		}
		if a.Level < 1 {
			a.Level = 1
		}
		r.artifacts[a.ID] = a
	}

	for _, doc := range cardsFile.Cards {
		card, ok := buildCard(doc, vb)
		if !ok {
			continue
		}
		if _, dup := r.cards[doc.Name]; dup {
			vb.Field(fmt.Sprintf("cards[%s]", doc.Name), "duplicate name")
		}
		r.cards[doc.Name] = card
	}

	for _, m := range monstersFile.Monsters {
		field := fmt.Sprintf("monsters[%s]", m.ID)
		if m.ID == "" {
			vb.RequiredField("monsters.id")
			continue
		}
		if m.HP <= 0 {
			vb.Field(field, "hp must be positive")
		}
		switch m.Pattern {
		case entities.PatternAggressive, entities.PatternDefensive, entities.PatternBalanced:
		default:
			vb.Fieldf(field, "unknown pattern %q", m.Pattern)
		}
		if len(m.Deck) == 0 {
			vb.Field(field, "deck is empty")
		}
		r.checkDeck(field, m.Deck, vb)
		r.checkArtifact(field, m.Artifact, vb)
		r.monsters[m.ID] = m
	}

	for _, h := range heroesFile.Heroes {
		field := fmt.Sprintf("heroes[%s]", h.ID)
		if h.ID == "" {
			vb.RequiredField("heroes.id")
			continue
		}
		if h.HP <= 0 {
			vb.Field(field, "hp must be positive")
		}
		r.checkDeck(field, h.Cards, vb)
		r.checkArtifact(field, h.Artifact, vb)
		r.checkArtifact(field, h.Engraved, vb)
		r.heroes[h.ID] = h
	}

	if err := vb.Build(); err != nil {
		return nil, errors.Wrap(err, "invalid content")
	}
	return r, nil
}

func decode(fsys fs.FS, path string, out any) error {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return errors.Wrapf(err, "failed to read %s", path)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, fmt.Sprintf("failed to parse %s", path))
	}
	return nil
}

func buildCard(doc cardDoc, vb *errors.ValidationBuilder) (cards.Card, bool) {
	field := fmt.Sprintf("cards[%s]", doc.Name)
	if doc.Name == "" {
		vb.RequiredField("cards.name")
		return nil, false
	}
	if len(doc.Dice) == 0 {
		vb.Field(field, "no dice")
		return nil, false
	}

	ok := true
	dice := make([]cards.Die, len(doc.Dice))
	for i, d := range doc.Dice {
		dieField := fmt.Sprintf("%s.dice[%d]", field, i)
		t := cards.ActionType(d.Type)
		if !t.Valid() {
			vb.Fieldf(dieField, "unknown type %q", d.Type)
			ok = false
		}
		if d.Min < 0 || d.Max < d.Min {
			vb.Fieldf(dieField, "invalid range %d-%d", d.Min, d.Max)
			ok = false
		}
		effect, err := effects.Parse(d.Effect)
		if err != nil {
			vb.Field(dieField, errors.GetMessage(err))
			ok = false
		}
		dice[i] = cards.Die{Type: t, Min: d.Min, Max: d.Max, Effect: effect}
	}
	if !ok {
		return nil, false
	}

	switch cards.Family(doc.Family) {
	case cards.FamilyStandard, "":
		return cards.NewStandard(doc.Name, dice), true
	case cards.FamilyCurrency:
		if doc.UnitCost <= 0 || doc.MaxBonus <= 0 {
			vb.Field(field, "currency cards need unit_cost and max_bonus")
			return nil, false
		}
		return cards.NewCurrency(doc.Name, dice, doc.UnitCost, doc.MaxBonus), true
	case cards.FamilyCounterStance:
		return cards.NewCounterStance(doc.Name, dice, doc.Offset), true
	case cards.FamilyResolve:
		if doc.MentalCost <= 0 {
			vb.Field(field, "resolve cards need mental_cost")
			return nil, false
		}
		return cards.NewResolve(doc.Name, dice, doc.MentalCost, doc.Bonus), true
	case cards.FamilyFated:
		return cards.NewFated(doc.Name, dice, doc.CritBonus), true
	}

	vb.Fieldf(field, "unknown family %q", doc.Family)
	return nil, false
}

func (r *Registry) checkDeck(field string, deck []string, vb *errors.ValidationBuilder) {
	for _, name := range deck {
		if _, ok := r.cards[name]; !ok {
			vb.Fieldf(field, "unknown card %q", name)
		}
	}
}

func (r *Registry) checkArtifact(field, id string, vb *errors.ValidationBuilder) {
	if id == "" {
		return
	}
	if _, ok := r.artifacts[id]; !ok {
		vb.Fieldf(field, "unknown artifact %q", id)
	}
}

func knownSpecial(s entities.Special) bool {
	for _, k := range entities.KnownSpecials {
		if k == s {
			return true
		}
	}
	return false
}

// Card returns the card with the given name
func (r *Registry) Card(name string) (cards.Card, error) {
	c, ok := r.cards[name]
	if !ok {
		return nil, errors.NotFoundf("card %q not found", name)
	}
	return c, nil
}

// CardNames lists every card, sorted
func (r *Registry) CardNames() []string {
	return sortedKeys(r.cards)
}

// Artifact returns a copy of the artifact with the given id
func (r *Registry) Artifact(id string) (*entities.Artifact, error) {
	a, ok := r.artifacts[id]
	if !ok {
		return nil, errors.NotFoundf("artifact %q not found", id)
	}
	return a.Clone(), nil
}

// MonsterIDs lists every monster, sorted
func (r *Registry) MonsterIDs() []string {
	return sortedKeys(r.monsters)
}

// MonsterDef returns the template of a monster
func (r *Registry) MonsterDef(id string) (MonsterDef, error) {
	m, ok := r.monsters[id]
	if !ok {
		return MonsterDef{}, errors.NotFoundf("monster %q not found", id)
	}
	out := *m
	out.Deck = append([]string(nil), m.Deck...)
	return out, nil
}

// Monster builds a fresh full-health combatant from a monster template.
func (r *Registry) Monster(id string) (*entities.Combatant, error) {
	m, ok := r.monsters[id]
	if !ok {
		return nil, errors.NotFoundf("monster %q not found", id)
	}

	cb := &entities.Combatant{
		ID:          m.ID,
		Name:        m.Name,
		Kind:        entities.KindMonster,
		MaxHP:       m.HP,
		MaxMental:   m.Mental,
		Attack:      m.Attack,
		Defense:     m.Defense,
		DefenseRate: m.DefenseRate,
		Pattern:     m.Pattern,
		Deck:        append([]string(nil), m.Deck...),
	}
	if m.Artifact != "" {
		cb.Artifact = r.artifacts[m.Artifact].Clone()
		cb.MaxHP += cb.Artifact.StatBonus(entities.StatHP)
		cb.MaxMental += cb.Artifact.StatBonus(entities.StatMental)
		cb.Attack += cb.Artifact.StatBonus(entities.StatAttack)
		cb.Defense += cb.Artifact.StatBonus(entities.StatDefense)
		cb.DefenseRate += cb.Artifact.StatBonus(entities.StatDefenseRate)
	}
	cb.HP = cb.MaxHP
	cb.Mental = cb.MaxMental
	return cb, nil
}

// HeroIDs lists every preset hero, sorted
func (r *Registry) HeroIDs() []string {
	return sortedKeys(r.heroes)
}

// Hero builds the character record of a preset hero
func (r *Registry) Hero(id string) (*entities.Character, error) {
	h, ok := r.heroes[id]
	if !ok {
		return nil, errors.NotFoundf("hero %q not found", id)
	}

	c := &entities.Character{
		ID:          h.ID,
		Name:        h.Name,
		MaxHP:       h.HP,
		MaxMental:   h.Mental,
		Attack:      h.Attack,
		Defense:     h.Defense,
		DefenseRate: h.DefenseRate,
		Currency:    h.Currency,
		Cards:       append([]string(nil), h.Cards...),
	}
	if h.Artifact != "" {
		c.Artifact = r.artifacts[h.Artifact].Clone()
	}
	if h.Engraved != "" {
		c.Engraved = r.artifacts[h.Engraved].Clone()
	}
	return c, nil
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

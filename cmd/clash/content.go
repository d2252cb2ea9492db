package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-clash/internal/content"
	"github.com/KirkDiggler/rpg-clash/internal/engine/cards"
)

var cardsCmd = &cobra.Command{
	Use:   "cards",
	Short: "List every card",
	RunE:  runCards,
}

var monstersCmd = &cobra.Command{
	Use:   "monsters",
	Short: "List every monster",
	RunE:  runMonsters,
}

var heroesCmd = &cobra.Command{
	Use:   "heroes",
	Short: "List the preset heroes",
	RunE:  runHeroes,
}

func runCards(cmd *cobra.Command, _ []string) error {
	reg, err := content.Load()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, name := range reg.CardNames() {
		card, err := reg.Card(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%-20s %-15s %s\n", card.Name(), card.Family(), formatDice(card.Dice()))
	}
	return nil
}

func runMonsters(cmd *cobra.Command, _ []string) error {
	reg, err := content.Load()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, id := range reg.MonsterIDs() {
		m, err := reg.Monster(id)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%-12s %-14s HP %-4d mental %-4d atk %-3d def %-3d %-10s %s\n",
			id, m.Name, m.MaxHP, m.MaxMental, m.Attack, m.Defense, m.Pattern, strings.Join(m.Deck, ", "))
	}
	return nil
}

func runHeroes(cmd *cobra.Command, _ []string) error {
	reg, err := content.Load()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, id := range reg.HeroIDs() {
		h, err := reg.Hero(id)
		if err != nil {
			return err
		}
		var gear []string
		if h.Artifact != nil {
			gear = append(gear, h.Artifact.Name)
		}
		if h.Engraved != nil {
			gear = append(gear, h.Engraved.Name+" (engraved)")
		}
		fmt.Fprintf(out, "%-8s HP %-4d mental %-4d atk %-3d def %-3d [%s] %s\n",
			id, h.MaxHP, h.MaxMental, h.Attack, h.Defense, strings.Join(gear, ", "), strings.Join(h.Cards, ", "))
	}
	return nil
}

func formatDice(ds []cards.Die) string {
	parts := make([]string, len(ds))
	for i, d := range ds {
		parts[i] = fmt.Sprintf("%s %d-%d", d.Type, d.Min, d.Max)
		if d.Effect != nil {
			parts[i] += " [" + d.Effect.Tag() + "]"
		}
	}
	return strings.Join(parts, ", ")
}

// Package mocks holds gomock expectation helpers shared by orchestrator tests
package mocks

import (
	"context"

	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-clash/internal/entities"
	battlerepo "github.com/KirkDiggler/rpg-clash/internal/repositories/battles"
	battlesmock "github.com/KirkDiggler/rpg-clash/internal/repositories/battles/mock"
	characterrepo "github.com/KirkDiggler/rpg-clash/internal/repositories/character"
	charactermock "github.com/KirkDiggler/rpg-clash/internal/repositories/character/mock"
)

// ExpectCharacterGet sets up a character lookup that returns char
func ExpectCharacterGet(
	repo *charactermock.MockRepository,
	ctx context.Context,
	char *entities.Character,
) *gomock.Call {
	return repo.EXPECT().
		Get(ctx, characterrepo.GetInput{ID: char.ID}).
		Return(&characterrepo.GetOutput{Character: char}, nil)
}

// ExpectBattleGet sets up a battle lookup that returns b
func ExpectBattleGet(
	repo *battlesmock.MockRepository,
	ctx context.Context,
	b *entities.Battle,
) *gomock.Call {
	return repo.EXPECT().
		Get(ctx, battlerepo.GetInput{ID: b.ID}).
		Return(&battlerepo.GetOutput{Battle: b}, nil)
}

// ExpectBattleCreate accepts any new battle and echoes it back
func ExpectBattleCreate(repo *battlesmock.MockRepository, ctx context.Context) *gomock.Call {
	return repo.EXPECT().
		Create(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input battlerepo.CreateInput) (*battlerepo.CreateOutput, error) {
			return &battlerepo.CreateOutput{Battle: input.Battle}, nil
		})
}

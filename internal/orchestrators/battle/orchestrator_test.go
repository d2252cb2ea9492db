package battle_test

import (
	"context"
	"testing"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-clash/internal/entities"
	"github.com/KirkDiggler/rpg-clash/internal/errors"
	"github.com/KirkDiggler/rpg-clash/internal/orchestrators/battle"
	"github.com/KirkDiggler/rpg-clash/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-clash/internal/testutils/mocks"
	battlerepo "github.com/KirkDiggler/rpg-clash/internal/repositories/battles"
	battlesmock "github.com/KirkDiggler/rpg-clash/internal/repositories/battles/mock"
	characterrepo "github.com/KirkDiggler/rpg-clash/internal/repositories/character"
	charactermock "github.com/KirkDiggler/rpg-clash/internal/repositories/character/mock"
)

type OrchestratorTestSuite struct {
	suite.Suite
	ctrl           *gomock.Controller
	mockBattleRepo *battlesmock.MockRepository
	mockCharRepo   *charactermock.MockRepository
	orchestrator   battle.Service
	ctx            context.Context
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockBattleRepo = battlesmock.NewMockRepository(s.ctrl)
	s.mockCharRepo = charactermock.NewMockRepository(s.ctrl)
	s.ctx = context.Background()

	orchestrator, err := battle.NewOrchestrator(&battle.Config{
		BattleRepo:    s.mockBattleRepo,
		CharacterRepo: s.mockCharRepo,
		Content:       newTestCatalogue(),
		EventBus:      events.NewBus(),
		IDGenerator:   idgen.NewSequential("battle"),
		Seeds:         func() (int64, error) { return 99, nil },
	})
	s.Require().NoError(err)
	s.orchestrator = orchestrator
}

func (s *OrchestratorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *OrchestratorTestSuite) TestNewOrchestrator_MissingDependencies() {
	_, err := battle.NewOrchestrator(&battle.Config{})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
	s.Contains(err.Error(), "BattleRepo")
	s.Contains(err.Error(), "EventBus")

	_, err = battle.NewOrchestrator(nil)
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestStartBattle_Validation() {
	tests := []struct {
		name    string
		input   *battle.StartBattleInput
		wantErr string
	}{
		{
			name:    "nil input",
			input:   nil,
			wantErr: "input is required",
		},
		{
			name: "unknown topology",
			input: &battle.StartBattleInput{
				Topology:     "brawl",
				CharacterIDs: []string{"h1"},
				MonsterIDs:   []string{"dummy"},
			},
			wantErr: "topology",
		},
		{
			name: "no characters",
			input: &battle.StartBattleInput{
				Topology:   entities.TopologyDuel,
				MonsterIDs: []string{"dummy"},
			},
			wantErr: "character_ids",
		},
		{
			name: "no opponents",
			input: &battle.StartBattleInput{
				Topology:     entities.TopologyDuel,
				CharacterIDs: []string{"h1"},
			},
			wantErr: "opponents",
		},
		{
			name: "duel with two monsters",
			input: &battle.StartBattleInput{
				Topology:     entities.TopologyDuel,
				CharacterIDs: []string{"h1"},
				MonsterIDs:   []string{"dummy", "dummy"},
			},
			wantErr: "exactly one opponent",
		},
		{
			name: "hunt with a party",
			input: &battle.StartBattleInput{
				Topology:     entities.TopologyHunt,
				CharacterIDs: []string{"h1", "h2"},
				MonsterIDs:   []string{"dummy"},
			},
			wantErr: "exactly one character",
		},
		{
			name: "raid with two bosses",
			input: &battle.StartBattleInput{
				Topology:     entities.TopologyRaid,
				CharacterIDs: []string{"h1", "h2"},
				MonsterIDs:   []string{"brute", "wall"},
			},
			wantErr: "exactly one boss",
		},
		{
			name: "monsters and characters",
			input: &battle.StartBattleInput{
				Topology:             entities.TopologyDuel,
				CharacterIDs:         []string{"h1"},
				MonsterIDs:           []string{"dummy"},
				OpponentCharacterIDs: []string{"h2"},
			},
			wantErr: "not both",
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			out, err := s.orchestrator.StartBattle(s.ctx, tt.input)
			s.Require().Error(err)
			s.Nil(out)
			s.True(errors.IsInvalidArgument(err))
			s.Contains(err.Error(), tt.wantErr)
		})
	}
}

func (s *OrchestratorTestSuite) TestStartBattle_Success() {
	mocks.ExpectCharacterGet(s.mockCharRepo, s.ctx, hero("h1"))

	mocks.ExpectBattleCreate(s.mockBattleRepo, s.ctx)

	out, err := s.orchestrator.StartBattle(s.ctx, &battle.StartBattleInput{
		Topology:     entities.TopologyHunt,
		CharacterIDs: []string{"h1"},
		MonsterIDs:   []string{"dummy", "dummy"},
	})
	s.Require().NoError(err)

	b := out.Battle
	s.Equal("battle_1", b.ID)
	s.Equal(int64(99), b.Seed)
	s.Equal(1, b.Turn)
	s.Equal(entities.StateAwaitingActions, b.State)
	s.Equal(entities.OutcomeContinuing, b.Outcome)

	s.Require().Len(b.SideA, 1)
	s.Equal(entities.KindPlayer, b.SideA[0].Kind)
	s.Equal("h1", b.SideA[0].CharacterID)

	s.Require().Len(b.SideB, 2)
	s.Equal("dummy-1", b.SideB[0].ID)
	s.Equal("dummy-2", b.SideB[1].ID)

	s.Len(b.Runtime, 3)
	for _, rt := range b.Runtime {
		s.Empty(rt.Cooldowns)
	}
}

func (s *OrchestratorTestSuite) TestStartBattle_ExplicitSeed() {
	mocks.ExpectCharacterGet(s.mockCharRepo, s.ctx, hero("h1"))
	mocks.ExpectCharacterGet(s.mockCharRepo, s.ctx, hero("h2"))

	mocks.ExpectBattleCreate(s.mockBattleRepo, s.ctx)

	out, err := s.orchestrator.StartBattle(s.ctx, &battle.StartBattleInput{
		Topology:             entities.TopologyDuel,
		CharacterIDs:         []string{"h1"},
		OpponentCharacterIDs: []string{"h2"},
		Seed:                 7,
	})
	s.Require().NoError(err)
	s.Equal(int64(7), out.Battle.Seed)
	s.Equal(entities.KindPlayer, out.Battle.SideB[0].Kind)
}

func (s *OrchestratorTestSuite) TestStartBattle_SameCharacterTwice() {
	mocks.ExpectCharacterGet(s.mockCharRepo, s.ctx, hero("h1")).
		Times(2)

	_, err := s.orchestrator.StartBattle(s.ctx, &battle.StartBattleInput{
		Topology:             entities.TopologyDuel,
		CharacterIDs:         []string{"h1"},
		OpponentCharacterIDs: []string{"h1"},
	})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
	s.Contains(err.Error(), "more than once")
}

func (s *OrchestratorTestSuite) TestStartBattle_CharacterNotFound() {
	s.mockCharRepo.EXPECT().
		Get(s.ctx, characterrepo.GetInput{ID: "ghost"}).
		Return(nil, errors.NotFound("character not found"))

	out, err := s.orchestrator.StartBattle(s.ctx, &battle.StartBattleInput{
		Topology:     entities.TopologyDuel,
		CharacterIDs: []string{"ghost"},
		MonsterIDs:   []string{"dummy"},
	})
	s.Require().Error(err)
	s.Nil(out)
	s.True(errors.IsNotFound(err))
	s.Contains(err.Error(), "failed to load character ghost")
}

func (s *OrchestratorTestSuite) TestStartBattle_UnknownMonster() {
	mocks.ExpectCharacterGet(s.mockCharRepo, s.ctx, hero("h1"))

	_, err := s.orchestrator.StartBattle(s.ctx, &battle.StartBattleInput{
		Topology:     entities.TopologyDuel,
		CharacterIDs: []string{"h1"},
		MonsterIDs:   []string{"dragon"},
	})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestStartBattle_StoreFails() {
	mocks.ExpectCharacterGet(s.mockCharRepo, s.ctx, hero("h1"))
	s.mockBattleRepo.EXPECT().
		Create(s.ctx, gomock.Any()).
		Return(nil, errors.Internal("redis down"))

	_, err := s.orchestrator.StartBattle(s.ctx, &battle.StartBattleInput{
		Topology:     entities.TopologyDuel,
		CharacterIDs: []string{"h1"},
		MonsterIDs:   []string{"dummy"},
	})
	s.Require().Error(err)
	s.True(errors.IsInternal(err))
}

func (s *OrchestratorTestSuite) TestGetBattle() {
	stored := &entities.Battle{ID: "battle_9", State: entities.StateAwaitingActions}
	mocks.ExpectBattleGet(s.mockBattleRepo, s.ctx, stored)

	out, err := s.orchestrator.GetBattle(s.ctx, &battle.GetBattleInput{BattleID: "battle_9"})
	s.Require().NoError(err)
	s.Equal(stored, out.Battle)
}

func (s *OrchestratorTestSuite) TestGetBattle_Errors() {
	_, err := s.orchestrator.GetBattle(s.ctx, &battle.GetBattleInput{})
	s.True(errors.IsInvalidArgument(err))

	s.mockBattleRepo.EXPECT().
		Get(s.ctx, battlerepo.GetInput{ID: "gone"}).
		Return(nil, errors.NotFound("battle gone not found"))

	_, err = s.orchestrator.GetBattle(s.ctx, &battle.GetBattleInput{BattleID: "gone"})
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestSubmitTurn_TerminalBattle() {
	s.mockBattleRepo.EXPECT().
		Get(s.ctx, battlerepo.GetInput{ID: "battle_1"}).
		Return(&battlerepo.GetOutput{Battle: &entities.Battle{
			ID:      "battle_1",
			State:   entities.StateTerminal,
			Outcome: entities.OutcomeSideAWins,
		}}, nil)

	out, err := s.orchestrator.SubmitTurn(s.ctx, &battle.SubmitTurnInput{BattleID: "battle_1"})
	s.Require().Error(err)
	s.Nil(out)
	s.True(errors.IsFailedPrecondition(err))
}

func (s *OrchestratorTestSuite) TestSubmitTurn_EmptyID() {
	_, err := s.orchestrator.SubmitTurn(s.ctx, &battle.SubmitTurnInput{})
	s.True(errors.IsInvalidArgument(err))
	s.Contains(err.Error(), "battle ID is required")
}

func (s *OrchestratorTestSuite) TestEndBattle_WritesBackCurrency() {
	player := entities.NewCombatant(hero("h1"))
	player.Currency = 120

	stored := &entities.Battle{
		ID:      "battle_1",
		State:   entities.StateTerminal,
		Outcome: entities.OutcomeSideAWins,
		SideA:   []*entities.Combatant{player},
		SideB:   []*entities.Combatant{monster("dummy-1", 30, 20, "Strike")},
	}

	persisted := hero("h1")
	persisted.Name = "Renamed Elsewhere"

	gomock.InOrder(
		s.mockBattleRepo.EXPECT().
			Get(s.ctx, battlerepo.GetInput{ID: "battle_1"}).
			Return(&battlerepo.GetOutput{Battle: stored}, nil),
		s.mockCharRepo.EXPECT().
			Get(s.ctx, characterrepo.GetInput{ID: "h1"}).
			Return(&characterrepo.GetOutput{Character: persisted}, nil),
		s.mockCharRepo.EXPECT().
			Update(s.ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, input characterrepo.UpdateInput) (*characterrepo.UpdateOutput, error) {
				s.Equal(120, input.Character.Currency)
				s.Equal("Renamed Elsewhere", input.Character.Name)
				return &characterrepo.UpdateOutput{Character: input.Character}, nil
			}),
		s.mockBattleRepo.EXPECT().
			Delete(s.ctx, battlerepo.DeleteInput{ID: "battle_1"}).
			Return(&battlerepo.DeleteOutput{}, nil),
	)

	out, err := s.orchestrator.EndBattle(s.ctx, &battle.EndBattleInput{BattleID: "battle_1"})
	s.Require().NoError(err)
	s.Require().Len(out.Characters, 1)
	s.Equal(120, out.Characters[0].Currency)
	s.Equal(entities.OutcomeSideAWins, out.Battle.Outcome)
}

func (s *OrchestratorTestSuite) TestEndBattle_CharacterSaveFails() {
	stored := &entities.Battle{
		ID:    "battle_1",
		SideA: []*entities.Combatant{entities.NewCombatant(hero("h1"))},
	}

	mocks.ExpectBattleGet(s.mockBattleRepo, s.ctx, stored)
	mocks.ExpectCharacterGet(s.mockCharRepo, s.ctx, hero("h1"))
	s.mockCharRepo.EXPECT().
		Update(s.ctx, gomock.Any()).
		Return(nil, errors.NotFound("character h1 not found"))

	_, err := s.orchestrator.EndBattle(s.ctx, &battle.EndBattleInput{BattleID: "battle_1"})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
	s.Contains(err.Error(), "failed to save character h1")
}

func TestOrchestratorTestSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}

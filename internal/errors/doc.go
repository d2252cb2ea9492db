// Package errors provides the coded error type used across rpg-clash.
//
// Errors carry a Code, a user-facing message, an optional cause and metadata:
//
//	err := errors.NotFound("battle not found").WithMeta("battle_id", id)
//
// Wrapping keeps the code of the underlying error:
//
//	if err := repo.Get(ctx, input); err != nil {
//	    return nil, errors.Wrap(err, "failed to load battle")
//	}
//
// Inputs and configs are validated with the builder:
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRequired("battle_id", input.BattleID, vb)
//	errors.ValidateRange("level", level, 1, 20, vb)
//	if err := vb.Build(); err != nil {
//	    return err
//	}
//
// Layer guidelines:
//   - Repositories return NotFound / AlreadyExists and wrap storage failures.
//   - Orchestrators return InvalidArgument for bad input and
//     FailedPrecondition when the battle is not in a state to accept it.
//   - The combat engine never returns errors for game-rule situations; bad
//     content is rejected when the content registry loads.
package errors

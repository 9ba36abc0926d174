package usecase

import (
	"context"
	"encoding/hex"
	"errors"
	"time"

	"golang.org/x/crypto/blake2b"

	"github.com/bnema/ballistic/internal/application/port"
	"github.com/bnema/ballistic/internal/domain/entity"
	"github.com/bnema/ballistic/internal/domain/physics"
	"github.com/bnema/ballistic/internal/domain/repository"
	"github.com/bnema/ballistic/internal/logging"
)

// PublishComponentInput contains the parameters for a publish run.
type PublishComponentInput struct {
	Params physics.Params
}

// Delivery is the outcome of posting one message.
type Delivery struct {
	Type      entity.MessageType
	Delivered bool
	Err       error
}

// PublishComponentOutput describes a publish run.
type PublishComponentOutput struct {
	RunID        string
	Document     string
	TargetOrigin string
	Deliveries   []Delivery
}

// Delivered reports whether every message reached the channel.
func (o *PublishComponentOutput) Delivered() bool {
	for _, d := range o.Deliveries {
		if !d.Delivered {
			return false
		}
	}
	return len(o.Deliveries) > 0
}

// PublishComponentUseCase builds the scene document and announces it to the
// host: ready first, then the value. Delivery problems are logged and
// reported in the output, never returned as errors; the host protocol has no
// acknowledgment to react to.
type PublishComponentUseCase struct {
	builder   port.DocumentBuilder
	channel   port.HostChannel
	emissions repository.EmissionRepository
	now       func() time.Time
}

// NewPublishComponentUseCase creates a new PublishComponentUseCase.
// emissions may be nil to skip history recording.
func NewPublishComponentUseCase(
	builder port.DocumentBuilder,
	channel port.HostChannel,
	emissions repository.EmissionRepository,
) *PublishComponentUseCase {
	return &PublishComponentUseCase{
		builder:   builder,
		channel:   channel,
		emissions: emissions,
		now:       time.Now,
	}
}

// Execute runs one publish. The document is fully built before any message
// is posted; a build failure posts nothing.
func (uc *PublishComponentUseCase) Execute(ctx context.Context, input PublishComponentInput) (*PublishComponentOutput, error) {
	if err := input.Params.Validate(); err != nil {
		return nil, err
	}
	doc, err := uc.builder.Build(input.Params)
	if err != nil {
		return nil, err
	}

	runID := logging.GenerateID(uc.now())
	origin := uc.channel.Origin()
	ctx = logging.WithOrigin(logging.WithComponent(ctx, "publisher"), origin)
	log := logging.FromContext(ctx)

	out := &PublishComponentOutput{
		RunID:        runID,
		Document:     doc,
		TargetOrigin: origin,
	}

	for _, msg := range []entity.HostMessage{entity.ReadyMessage(), entity.ValueMessage(doc)} {
		if err := ctx.Err(); err != nil {
			return out, err
		}

		env := entity.Envelope{Message: msg, TargetOrigin: origin}
		postErr := uc.channel.Post(ctx, env)
		d := Delivery{Type: msg.Type, Delivered: postErr == nil, Err: postErr}
		out.Deliveries = append(out.Deliveries, d)

		if postErr != nil {
			log.Warn().Err(postErr).Str("type", string(msg.Type)).Str("transport", uc.channel.Name()).Msg("host message not delivered")
		} else {
			log.Debug().Str("type", string(msg.Type)).Str("transport", uc.channel.Name()).Msg("host message posted")
		}

		uc.record(ctx, runID, env, d)
	}

	log.Info().
		Str("run", logging.ShortID(runID)).
		Int("bytes", len(doc)).
		Bool("delivered", out.Delivered()).
		Msg("component published")
	return out, nil
}

func (uc *PublishComponentUseCase) record(ctx context.Context, runID string, env entity.Envelope, d Delivery) {
	if uc.emissions == nil {
		return
	}
	log := logging.FromContext(ctx)

	now := uc.now()
	e := &entity.Emission{
		ID:           entity.EmissionID(logging.GenerateID(now)),
		RunID:        runID,
		Type:         env.Message.Type,
		TargetOrigin: env.TargetOrigin,
		Transport:    uc.channel.Name(),
		Delivered:    d.Delivered,
		CreatedAt:    now.UTC(),
	}
	if env.Message.Value != nil {
		payload := env.Message.Payload()
		sum := blake2b.Sum256([]byte(payload))
		e.PayloadSize = len(payload)
		e.PayloadDigest = hex.EncodeToString(sum[:])
	}
	if d.Err != nil {
		e.Error = d.Err.Error()
	}

	if err := uc.emissions.Save(ctx, e); err != nil && !errors.Is(err, context.Canceled) {
		log.Warn().Err(err).Msg("failed to record emission")
	}
}

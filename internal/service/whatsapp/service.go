package whatsapp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tahmidrayat/dukandost/internal/config"
	"github.com/tahmidrayat/dukandost/internal/domain/models"
	"github.com/tahmidrayat/dukandost/internal/repository/messages"
	"github.com/tahmidrayat/dukandost/internal/service/extraction"
	"github.com/tahmidrayat/dukandost/internal/service/inventory"
	"github.com/tahmidrayat/dukandost/pkg/clients/openai"
	client "github.com/tahmidrayat/dukandost/pkg/clients/whatsapp"
)

// transcriptionErrorPrefix marks a transcription/OCR result that is a failure
// description, not message content. Anything carrying it skips parsing and is
// sent back to the user verbatim.
const transcriptionErrorPrefix = "ERROR: "

// MessagingService describes the operations the HTTP layer can perform.
type MessagingService interface {
	VerifyWebhookToken(mode, verifyToken, challenge string) (string, error)
	HandleWebhook(ctx context.Context, payload models.WebhookPayload) error
	SendOutbound(ctx context.Context, req models.OutboundMessageRequest) error
}

// MetaWhatsAppService is the production implementation backed by WhatsApp
// Cloud API. It routes one inbound message through transcription (for media),
// the transaction parser and the inventory service, then replies.
type MetaWhatsAppService struct {
	cfg       config.WhatsAppConfig
	client    client.Client
	ai        openai.Client
	extractor *extraction.Extractor
	inventory *inventory.Service
	msgLog    messages.Log
	logger    *zap.Logger
}

// NewMetaWhatsAppService wires a new service instance. ai and msgLog may be
// nil: without ai, media messages get an error reply; without msgLog, inbound
// messages are simply not logged.
func NewMetaWhatsAppService(
	cfg config.WhatsAppConfig,
	client client.Client,
	ai openai.Client,
	extractor *extraction.Extractor,
	inventorySvc *inventory.Service,
	msgLog messages.Log,
	logger *zap.Logger,
) *MetaWhatsAppService {
	svc := &MetaWhatsAppService{
		cfg:       cfg,
		client:    client,
		ai:        ai,
		extractor: extractor,
		inventory: inventorySvc,
		msgLog:    msgLog,
		logger:    logger,
	}
	if svc.logger == nil {
		svc.logger = zap.NewNop()
	}
	return svc
}

// VerifyWebhookToken validates the callback verification token.
func (s *MetaWhatsAppService) VerifyWebhookToken(mode, verifyToken, challenge string) (string, error) {
	if mode == "" || verifyToken == "" {
		return "", errors.New("missing mode or verify token")
	}

	if !strings.EqualFold(mode, "subscribe") {
		return "", fmt.Errorf("unsupported hub.mode %s", mode)
	}

	if verifyToken != s.cfg.VerifyToken {
		return "", errors.New("invalid verify token")
	}

	return challenge, nil
}

// HandleWebhook processes inbound webhook payloads. The reply contract in
// handleInboundMessage guarantees no message goes unanswered.
func (s *MetaWhatsAppService) HandleWebhook(ctx context.Context, payload models.WebhookPayload) error {
	if len(payload.Entry) == 0 {
		return nil
	}

	var firstErr error

	for _, entry := range payload.Entry {
		for _, change := range entry.Changes {
			if len(change.Value.Messages) == 0 {
				continue
			}

			for _, msg := range change.Value.Messages {
				if err := s.handleInboundMessage(ctx, msg); err != nil {
					s.logger.Error("failed to handle inbound message", zap.Error(err), zap.String("message_id", msg.ID))
					if firstErr == nil {
						firstErr = err
					}
				}
			}
		}
	}

	return firstErr
}

func (s *MetaWhatsAppService) handleInboundMessage(ctx context.Context, msg models.InboundMessage) error {
	heard := s.resolveContent(ctx, msg)

	var reply string
	if strings.HasPrefix(heard, transcriptionErrorPrefix) {
		// Transcription/OCR failure: pass through verbatim, nothing to parse.
		reply = heard
	} else {
		reply = s.processText(ctx, msg.From, heard)
	}

	s.logger.Info("inbound message handled",
		zap.String("from", msg.From),
		zap.String("type", msg.Type),
		zap.String("heard", heard))

	ctxWithTimeout, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := s.client.SendTextMessage(ctxWithTimeout, client.SendTextMessageRequest{
		To:         msg.From,
		Body:       reply,
		PreviewURL: false,
	})
	return err
}

// processText runs recognized text through the parser and inventory service
// and composes the reply.
func (s *MetaWhatsAppService) processText(ctx context.Context, sender, text string) string {
	if s.msgLog != nil && text != "" {
		if err := s.msgLog.Save(ctx, sender, text); err != nil {
			s.logger.Warn("failed to log inbound message", zap.Error(err))
		}
	}

	ex := s.extractor.Extract(text)

	if ex.Recognized() {
		update, err := s.inventory.ApplySale(ctx, ex.Item, *ex.Quantity)
		if err != nil {
			return composeUpdateError(ex.Item, err)
		}
		return composeConfirmation(ex, update)
	}

	if ex.Item != "" {
		return composeQuantityPrompt(ex.Item)
	}

	suggestion, _ := s.extractor.Suggest(text)
	return composeEcho(text, suggestion)
}

// resolveContent turns an inbound message into plain text: the body for text
// messages, a transcript for voice notes, OCR output for photos. Failures are
// reported in-band with the transcription error marker so the caller treats
// all collaborator faults the same way.
func (s *MetaWhatsAppService) resolveContent(ctx context.Context, msg models.InboundMessage) string {
	switch {
	case msg.Text != nil:
		return msg.Text.Body

	case msg.Audio != nil:
		if s.ai == nil {
			return transcriptionErrorPrefix + "voice transcription is not set up, please type the sale instead"
		}
		audio, mimeType, err := s.client.DownloadMedia(ctx, msg.Audio.ID)
		if err != nil {
			s.logger.Warn("voice note download failed", zap.Error(err))
			return transcriptionErrorPrefix + "could not fetch the voice note, please try again"
		}
		text, err := s.ai.TranscribeAudio(ctx, audio, mimeType)
		if err != nil {
			s.logger.Warn("voice note transcription failed", zap.Error(err))
			return transcriptionErrorPrefix + "could not understand the voice note, please type the sale"
		}
		return text

	case msg.Image != nil:
		if s.ai == nil {
			return transcriptionErrorPrefix + "photo reading is not set up, please type the sale instead"
		}
		image, mimeType, err := s.client.DownloadMedia(ctx, msg.Image.ID)
		if err != nil {
			s.logger.Warn("photo download failed", zap.Error(err))
			return transcriptionErrorPrefix + "could not fetch the photo, please try again"
		}
		text, err := s.ai.ExtractImageText(ctx, image, mimeType)
		if err != nil {
			s.logger.Warn("photo ocr failed", zap.Error(err))
			return transcriptionErrorPrefix + "could not read the photo, please type the sale"
		}
		return text
	}

	// Stickers, locations and other types parse to nothing and get the echo reply.
	return ""
}

// SendOutbound lets internal operators push quick notifications via HTTP.
func (s *MetaWhatsAppService) SendOutbound(ctx context.Context, req models.OutboundMessageRequest) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := s.client.SendTextMessage(ctxWithTimeout, client.SendTextMessageRequest{
		To:         req.To,
		Body:       req.Message,
		PreviewURL: req.PreviewURL,
	})
	return err
}

// Package imagegen renders flyer images from advert titles.
package imagegen

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"

	"marketplace/config"
	"marketplace/internal/domain/service"
	"marketplace/internal/errors"

	"go.uber.org/fx"
	"google.golang.org/api/aiplatform/v1"
	"google.golang.org/api/option"
)

// ErrDisabled is returned by the generator used when no provider is configured.
var ErrDisabled = errors.New("image generation is disabled")

// Params defines the required parameters
type Params struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// New returns the generator selected by imageGen.provider.
func New(params Params) (service.ImageGenerator, error) {
	cfg := params.Config.ImageGen

	switch cfg.Provider {
	case config.ImageGenProviderVertex:
		opts := []option.ClientOption{option.WithEndpoint(regionalEndpoint(cfg))}
		if cfg.CredentialsPath != "" {
			opts = append(opts, option.WithCredentialsFile(cfg.CredentialsPath))
		}

		generator, err := NewVertexGenerator(context.Background(), cfg, opts...)
		if err != nil {
			return nil, err
		}
		params.Logger.Info("Vertex AI image generator configured",
			slog.String("model", cfg.Model),
			slog.String("location", cfg.Location),
		)

		return generator, nil
	default:
		params.Logger.Warn("Image generation disabled; adverts without a flyer will be rejected")

		return disabledGenerator{}, nil
	}
}

func regionalEndpoint(cfg *config.ImageGenConfig) string {
	if cfg.Endpoint != "" {
		return cfg.Endpoint
	}

	return fmt.Sprintf("https://%s-aiplatform.googleapis.com/", cfg.Location)
}

type disabledGenerator struct{}

func (disabledGenerator) Generate(context.Context, string) ([]byte, error) {
	return nil, ErrDisabled
}

// vertexGenerator calls an Imagen publisher model through the Vertex AI predict endpoint.
type vertexGenerator struct {
	endpoints *aiplatform.ProjectsLocationsEndpointsService
	model     string
}

type imagenInstance struct {
	Prompt string `json:"prompt"`
}

type imagenParameters struct {
	SampleCount int `json:"sampleCount"`
}

// NewVertexGenerator creates an Imagen client for the configured project and model.
func NewVertexGenerator(ctx context.Context, cfg *config.ImageGenConfig, opts ...option.ClientOption) (service.ImageGenerator, error) {
	svc, err := aiplatform.NewService(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Vertex AI client")
	}

	return &vertexGenerator{
		endpoints: svc.Projects.Locations.Endpoints,
		model:     fmt.Sprintf("projects/%s/locations/%s/publishers/google/models/%s", cfg.ProjectID, cfg.Location, cfg.Model),
	}, nil
}

// Generate requests a single image for the prompt and returns its decoded bytes.
func (g *vertexGenerator) Generate(ctx context.Context, prompt string) ([]byte, error) {
	req := &aiplatform.GoogleCloudAiplatformV1PredictRequest{
		Instances:  []any{imagenInstance{Prompt: prompt}},
		Parameters: imagenParameters{SampleCount: 1},
	}

	resp, err := g.endpoints.Predict(g.model, req).Context(ctx).Do()
	if err != nil {
		return nil, errors.Wrap(err, "imagen predict failed")
	}

	for _, prediction := range resp.Predictions {
		fields, ok := prediction.(map[string]any)
		if !ok {
			continue
		}
		encoded, ok := fields["bytesBase64Encoded"].(string)
		if !ok || encoded == "" {
			continue
		}

		image, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return nil, errors.Wrap(err, "failed to decode generated image")
		}

		return image, nil
	}

	return nil, errors.New("imagen returned no image")
}

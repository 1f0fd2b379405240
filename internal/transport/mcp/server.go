package mcp

import (
	"context"
	"errors"
	"io"
	stdlog "log"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sandevgo/bioprep/internal/core"
	"github.com/sandevgo/bioprep/internal/record"
	"github.com/sandevgo/bioprep/internal/service/batch"
	"github.com/sandevgo/bioprep/internal/service/face"
	"github.com/sandevgo/bioprep/pkg/log"
)

const (
	ToolGenerateBiography = "generate_biography"
	ToolDescribeFace      = "describe_face"
)

// Server exposes the generators as MCP tools over stdio.
type Server struct {
	bio  batch.BiographyGenerator
	face batch.FaceDescriber
	mcp  *server.MCPServer
}

// NewServer registers a tool for every non-nil dependency.
func NewServer(bio batch.BiographyGenerator, face batch.FaceDescriber) *Server {
	s := &Server{
		bio:  bio,
		face: face,
		mcp:  server.NewMCPServer(core.AppName, core.AppVersion, server.WithToolCapabilities(false)),
	}

	if bio != nil {
		s.mcp.AddTool(mcp.NewTool(ToolGenerateBiography,
			mcp.WithDescription("Write a short Persian biography paragraph from a person record."),
			mcp.WithString("record",
				mcp.Required(),
				mcp.Description("Person record as a JSON object, keys in the order they should be read"),
			),
		), s.handleBiography)
	}
	if face != nil {
		s.mcp.AddTool(mcp.NewTool(ToolDescribeFace,
			mcp.WithDescription("Describe in Persian the face shown in one or more photos of the same person."),
			mcp.WithArray("images",
				mcp.Required(),
				mcp.Description("Public image URLs"),
				mcp.WithStringItems(),
			),
		), s.handleFace)
	}
	return s
}

func (s *Server) MCP() *server.MCPServer {
	return s.mcp
}

// Serve blocks on stdin/stdout until the client disconnects or ctx is done.
func (s *Server) Serve(ctx context.Context) error {
	return s.Listen(ctx, os.Stdin, os.Stdout)
}

// Listen serves MCP over the given streams. Tool handlers get the logger
// carried by ctx.
func (s *Server) Listen(ctx context.Context, in io.Reader, out io.Writer) error {
	logger := log.FromCtx(ctx)

	stdio := server.NewStdioServer(s.mcp)
	stdio.SetErrorLogger(stdlog.New(logger, "", 0))
	stdio.SetContextFunc(func(c context.Context) context.Context {
		return logger.WithContext(c)
	})

	logger.Info().Msg("mcp server listening on stdio")
	err := stdio.Listen(ctx, in, out)
	if err != nil && (errors.Is(err, context.Canceled) || errors.Is(err, io.EOF)) {
		return nil
	}
	return err
}

func (s *Server) handleBiography(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := req.RequireString("record")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	p, err := record.ParsePerson([]byte(raw))
	if err != nil {
		return mcp.NewToolResultError("record must be a JSON object: " + err.Error()), nil
	}

	text, err := s.bio.Generate(ctx, p)
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Str("person", p.Label()).Msg("biography tool failed")
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(text), nil
}

func (s *Server) handleFace(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	images := req.GetStringSlice("images", nil)

	d, err := s.face.Describe(ctx, images)
	if err != nil {
		if !errors.Is(err, face.ErrNoImages) {
			log.FromCtx(ctx).Error().Err(err).Msg("face tool failed")
		}
		return mcp.NewToolResultError(err.Error()), nil
	}
	if d.Unclear {
		return mcp.NewToolResultText(face.Unclear), nil
	}
	return mcp.NewToolResultText(d.Text), nil
}

package services

import (
	"bytes"
	"context"
	"fmt"
	"image/color"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"

	"github.com/yungbote/storefront-backend/internal/clients/media"
	"github.com/yungbote/storefront-backend/internal/logger"
	"github.com/yungbote/storefront-backend/internal/types"
)

// AvatarService renders an initials avatar for new accounts. Purely
// cosmetic; callers treat failures as non-fatal.
type AvatarService interface {
	GenerateInitialsAvatar(ctx context.Context, user *types.User) (string, error)
}

type avatarService struct {
	log        *logger.Logger
	mediaStore media.Store
	bgColors   []color.NRGBA
	fontFace   font.Face
}

var defaultAvatarPalette = []color.NRGBA{
	{R: 0x3B, G: 0x82, B: 0xF6, A: 0xFF},
	{R: 0x10, G: 0xB9, B: 0x81, A: 0xFF},
	{R: 0xF5, G: 0x9E, B: 0x0B, A: 0xFF},
	{R: 0xEF, G: 0x44, B: 0x44, A: 0xFF},
	{R: 0x8B, G: 0x5C, B: 0xF6, A: 0xFF},
	{R: 0xEC, G: 0x48, B: 0x99, A: 0xFF},
}

func NewAvatarService(log *logger.Logger, mediaStore media.Store) (AvatarService, error) {
	serviceLog := log.With("service", "AvatarService")

	fontPath := strings.TrimSpace(os.Getenv("AVATAR_FONT"))
	if fontPath == "" {
		return nil, fmt.Errorf("env var AVATAR_FONT is empty")
	}
	serviceLog.Info("Loading avatar font", "font", fontPath)

	face, err := loadFontFace(fontPath, 206)
	if err != nil {
		return nil, fmt.Errorf("could not load avatar font: %w", err)
	}

	return &avatarService{
		log:        serviceLog,
		mediaStore: mediaStore,
		bgColors:   defaultAvatarPalette,
		fontFace:   face,
	}, nil
}

func (as *avatarService) GenerateInitialsAvatar(ctx context.Context, user *types.User) (string, error) {
	const size = 512

	dc := gg.NewContext(size, size)
	dc.DrawCircle(float64(size)/2, float64(size)/2, float64(size)/2)
	dc.Clip()

	base := as.bgColors[rand.Intn(len(as.bgColors))]
	dc.SetColor(base)
	dc.DrawRectangle(0, 0, float64(size), float64(size))
	dc.Fill()

	initials := computeInitials(user.FirstName, user.LastName)

	dc.SetFontFace(as.fontFace)
	tw, th := dc.MeasureString(initials)
	cx, cy := float64(size)/2, float64(size)/2

	dc.SetColor(color.White)
	dc.DrawString(initials, cx-(tw/2), cy+(th/2)-10)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return "", fmt.Errorf("encode avatar png: %w", err)
	}

	// Versioned name so browsers never serve a stale cached avatar.
	name := fmt.Sprintf("avatar_%s_%d", user.ID.String(), time.Now().UnixNano())
	url, err := as.mediaStore.SavePNG(name, buf.Bytes())
	if err != nil {
		return "", fmt.Errorf("store avatar: %w", err)
	}
	return url, nil
}

func computeInitials(first, last string) string {
	return firstRuneUpper(first) + firstRuneUpper(last)
}

// firstRuneUpper takes the first rune, not the first byte, so names like
// "Éloise" keep a valid initial.
func firstRuneUpper(s string) string {
	for _, r := range s {
		return strings.ToUpper(string(r))
	}
	return "?"
}

func loadFontFace(path string, points float64) (font.Face, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font file: %w", err)
	}
	f, err := truetype.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return truetype.NewFace(f, &truetype.Options{Size: points}), nil
}

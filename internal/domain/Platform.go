package domain

import "fmt"

type Platform string

const (
	PlatformFacebook  Platform = "facebook"
	PlatformInstagram Platform = "instagram"
	PlatformGoogle    Platform = "google"
	PlatformTikTok    Platform = "tiktok"
	PlatformLinkedIn  Platform = "linkedin"

	// PlatformAggregated identifica as linhas de métricas consolidadas de todas as plataformas
	PlatformAggregated Platform = "aggregated"
)

var supportedPlatforms = map[Platform]struct{}{
	PlatformFacebook:  {},
	PlatformInstagram: {},
	PlatformGoogle:    {},
	PlatformTikTok:    {},
	PlatformLinkedIn:  {},
}

func (p Platform) IsValid() bool {
	_, ok := supportedPlatforms[p]
	return ok
}

func ParsePlatform(value string) (Platform, error) {
	p := Platform(value)
	if !p.IsValid() {
		return "", fmt.Errorf("plataforma não suportada: %s", value)
	}
	return p, nil
}

// AllPlatforms lista as plataformas suportadas em ordem estável
func AllPlatforms() []Platform {
	return []Platform{PlatformFacebook, PlatformInstagram, PlatformGoogle, PlatformTikTok, PlatformLinkedIn}
}

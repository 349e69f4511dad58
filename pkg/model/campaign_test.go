package model

import (
	"testing"
	"time"
)

func TestCampaignSummary_IsClosed(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		campaign CampaignSummary
		want     bool
	}{
		{
			"active with future window",
			CampaignSummary{Status: CampaignStatusActive, RecruitmentEndDate: now.Add(48 * time.Hour)},
			false,
		},
		{
			"deactive",
			CampaignSummary{Status: CampaignStatusDeactive, RecruitmentEndDate: now.Add(48 * time.Hour)},
			true,
		},
		{
			"active but window passed",
			CampaignSummary{Status: CampaignStatusActive, RecruitmentEndDate: now.Add(-time.Hour)},
			true,
		},
		{
			"active with zero window",
			CampaignSummary{Status: CampaignStatusActive},
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.campaign.IsClosed(now); got != tt.want {
				t.Errorf("IsClosed() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCampaignSummary_PublicBrand(t *testing.T) {
	public := CampaignSummary{Brand: "#GlowCo"}
	if !public.IsPublic() {
		t.Error("expected #-prefixed brand to be public")
	}
	if got := public.DisplayBrand(); got != "GlowCo" {
		t.Errorf("DisplayBrand() = %q, want %q", got, "GlowCo")
	}

	private := CampaignSummary{Brand: "GlowCo"}
	if private.IsPublic() {
		t.Error("expected plain brand to be private")
	}
	if got := private.DisplayBrand(); got != "GlowCo" {
		t.Errorf("DisplayBrand() = %q, want %q", got, "GlowCo")
	}
}

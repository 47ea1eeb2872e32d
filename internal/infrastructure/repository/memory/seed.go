package memory

import (
	"github.com/riskibarqy/proclubs-fantasy/internal/domain/league"
	"github.com/riskibarqy/proclubs-fantasy/internal/domain/player"
)

const (
	LeagueIDVPGEurope = "vpg-eu-d1-fc26"
	LeagueIDPCLNorth  = "pcl-na-prem-fc26"
)

func SeedLeagues() []league.League {
	return []league.League{
		{
			ID:        LeagueIDVPGEurope,
			Name:      "VPG Europe Division 1",
			Platform:  "PS5",
			Season:    "FC26 S1",
			IsDefault: true,
		},
		{
			ID:        LeagueIDPCLNorth,
			Name:      "Pro Clubs League NA Premier",
			Platform:  "Crossplay",
			Season:    "FC26 S1",
			IsDefault: false,
		},
	}
}

func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: "vpg-gk-01", LeagueID: LeagueIDVPGEurope, TeamID: "nordic-storm", Name: "FrostWall_GK", Position: player.PositionGK, Price: 85},
		{ID: "vpg-gk-02", LeagueID: LeagueIDVPGEurope, TeamID: "atlas-esports", Name: "AtlasKeeper", Position: player.PositionGK, Price: 80},
		{ID: "vpg-def-01", LeagueID: LeagueIDVPGEurope, TeamID: "nordic-storm", Name: "Bjorn_CB", Position: player.PositionCB, Price: 88},
		{ID: "vpg-def-02", LeagueID: LeagueIDVPGEurope, TeamID: "atlas-esports", Name: "IronSliderz", Position: player.PositionCB, Price: 84},
		{ID: "vpg-def-03", LeagueID: LeagueIDVPGEurope, TeamID: "iron-harbour", Name: "LeftLaneLuka", Position: player.PositionLB, Price: 82},
		{ID: "vpg-def-04", LeagueID: LeagueIDVPGEurope, TeamID: "lumen-athletic", Name: "OverlapOscar", Position: player.PositionRB, Price: 80},
		{ID: "vpg-def-05", LeagueID: LeagueIDVPGEurope, TeamID: "iron-harbour", Name: "WingbackWes", Position: player.PositionLWB, Price: 78},
		{ID: "vpg-def-06", LeagueID: LeagueIDVPGEurope, TeamID: "lumen-athletic", Name: "RWB_Rafa", Position: player.PositionRWB, Price: 76},
		{ID: "vpg-mid-01", LeagueID: LeagueIDVPGEurope, TeamID: "nordic-storm", Name: "PivotPer", Position: player.PositionCDM, Price: 90},
		{ID: "vpg-mid-02", LeagueID: LeagueIDVPGEurope, TeamID: "atlas-esports", Name: "MetronomeMo", Position: player.PositionCM, Price: 95},
		{ID: "vpg-mid-03", LeagueID: LeagueIDVPGEurope, TeamID: "iron-harbour", Name: "TenTheMaestro", Position: player.PositionCAM, Price: 99},
		{ID: "vpg-mid-04", LeagueID: LeagueIDVPGEurope, TeamID: "lumen-athletic", Name: "LM_Lasse", Position: player.PositionLM, Price: 86},
		{ID: "vpg-mid-05", LeagueID: LeagueIDVPGEurope, TeamID: "nordic-storm", Name: "RM_Rico", Position: player.PositionRM, Price: 84},
		{ID: "vpg-mid-06", LeagueID: LeagueIDVPGEurope, TeamID: "atlas-esports", Name: "BoxToBoxBen", Position: player.PositionCM, Price: 88},
		{ID: "vpg-fwd-01", LeagueID: LeagueIDVPGEurope, TeamID: "iron-harbour", Name: "NineOhNine", Position: player.PositionST, Price: 105},
		{ID: "vpg-fwd-02", LeagueID: LeagueIDVPGEurope, TeamID: "lumen-athletic", Name: "CF_Cassius", Position: player.PositionCF, Price: 98},
		{ID: "vpg-fwd-03", LeagueID: LeagueIDVPGEurope, TeamID: "nordic-storm", Name: "LW_Viking", Position: player.PositionLW, Price: 92},
		{ID: "vpg-fwd-04", LeagueID: LeagueIDVPGEurope, TeamID: "atlas-esports", Name: "RightWingRen", Position: player.PositionRW, Price: 90},
		{ID: "pcl-gk-01", LeagueID: LeagueIDPCLNorth, TeamID: "toronto-tide", Name: "TideStopper", Position: player.PositionGK, Price: 86},
		{ID: "pcl-def-01", LeagueID: LeagueIDPCLNorth, TeamID: "toronto-tide", Name: "NorthWall", Position: player.PositionCB, Price: 90},
		{ID: "pcl-mid-01", LeagueID: LeagueIDPCLNorth, TeamID: "austin-outlaws", Name: "OutlawEight", Position: player.PositionCM, Price: 94},
		{ID: "pcl-fwd-01", LeagueID: LeagueIDPCLNorth, TeamID: "austin-outlaws", Name: "LoneStarStriker", Position: player.PositionST, Price: 104},
	}
}

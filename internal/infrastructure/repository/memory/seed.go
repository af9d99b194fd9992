package memory

import (
	"github.com/sportorg/competition-api/internal/domain/club"
	"github.com/sportorg/competition-api/internal/domain/competition"
	"github.com/sportorg/competition-api/internal/domain/group"
	"github.com/sportorg/competition-api/internal/domain/place"
	"github.com/sportorg/competition-api/internal/domain/player"
)

const (
	ClubIDNorthside = "club-northside"
	ClubIDRiverton  = "club-riverton"

	GroupIDMen = "grp-men"
	GroupIDU12 = "grp-u12"
	GroupIDU15 = "grp-u15"

	CompetitionIDSeniorLeague = "comp-senior-league"
	CompetitionIDU12Cup       = "comp-u12-cup"
)

func SeedPlaces() []place.Place {
	return []place.Place{
		{ID: "place-north", Name: "Northside Arena", Region: "North"},
		{ID: "place-river", Name: "Riverton Sports Hall", Region: "East"},
	}
}

func SeedClubs() []club.Club {
	return []club.Club{
		{ID: ClubIDNorthside, PlaceID: "place-north", Name: "Northside SC", ShortName: "NSC"},
		{ID: ClubIDRiverton, PlaceID: "place-river", Name: "Riverton United", ShortName: "RVU"},
	}
}

func SeedGroups() []group.Group {
	return []group.Group{
		{ID: GroupIDMen, Name: "Men", AgeType: group.AgeTypeAbove},
		{ID: GroupIDU12, Name: "U12", AgeType: group.AgeTypeUnder},
		{ID: GroupIDU15, Name: "U15", AgeType: group.AgeTypeUnder},
	}
}

func SeedCompetitions() []competition.Competition {
	return []competition.Competition{
		{
			ID:                 CompetitionIDSeniorLeague,
			Name:               "Senior League",
			MaxPlayers:         14,
			AgeEligibilityDate: "1990-01-01",
			Groups: []competition.Group{
				{GroupID: GroupIDMen, Name: "Men", AgeType: group.AgeTypeAbove},
			},
		},
		{
			ID:         CompetitionIDU12Cup,
			Name:       "U12 Spring Cup",
			MaxPlayers: 12,
			Groups: []competition.Group{
				{GroupID: GroupIDU12, Name: "U12", AgeType: group.AgeTypeUnder, AgeEligibilityDate: "2013-01-01"},
			},
		},
	}
}

func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: "north-p01", ClubID: ClubIDNorthside, FirstName: "Jonas", LastName: "Vik", DateOfBirth: "1996-04-12", GroupIDs: []string{GroupIDMen}, Position: player.PositionGoalkeeper},
		{ID: "north-p02", ClubID: ClubIDNorthside, FirstName: "Emil", LastName: "Sande", DateOfBirth: "1998-11-02", GroupIDs: []string{GroupIDMen}, Position: player.PositionDefender},
		{ID: "north-p03", ClubID: ClubIDNorthside, FirstName: "Oskar", LastName: "Lunde", DateOfBirth: "2008-06-20", GroupIDs: []string{GroupIDMen, GroupIDU15}, Position: player.PositionMidfielder},
		{ID: "north-p04", ClubID: ClubIDNorthside, FirstName: "Mats", LastName: "Berge", DateOfBirth: "2008-09-14", GroupIDs: []string{GroupIDMen, GroupIDU15}, Position: player.PositionForward},
		{ID: "north-p05", ClubID: ClubIDNorthside, FirstName: "Sander", LastName: "Holm", DateOfBirth: "2009-01-30", GroupIDs: []string{GroupIDMen, GroupIDU15}, Position: player.PositionDefender},
		{ID: "north-p06", ClubID: ClubIDNorthside, FirstName: "Teo", LastName: "Nes", DateOfBirth: "2009-03-08", GroupIDs: []string{GroupIDMen, GroupIDU15}, Position: player.PositionMidfielder},
		{ID: "north-p07", ClubID: ClubIDNorthside, FirstName: "Live", LastName: "Strand", DateOfBirth: "", GroupIDs: []string{GroupIDMen}, Position: player.PositionForward},
		{ID: "north-p08", ClubID: ClubIDNorthside, FirstName: "Aksel", LastName: "Moen", DateOfBirth: "2013-05-17", GroupIDs: []string{GroupIDU12}, Position: player.PositionMidfielder},
		{ID: "north-p09", ClubID: ClubIDNorthside, FirstName: "Brage", LastName: "Dahl", DateOfBirth: "2012-10-03", GroupIDs: []string{GroupIDU12}, Position: player.PositionForward},
		{ID: "river-p01", ClubID: ClubIDRiverton, FirstName: "Ivar", LastName: "Foss", DateOfBirth: "1994-02-25", GroupIDs: []string{GroupIDMen}, Position: player.PositionGoalkeeper},
		{ID: "river-p02", ClubID: ClubIDRiverton, FirstName: "Noah", LastName: "Eik", DateOfBirth: "2013-01-01", GroupIDs: []string{GroupIDU12}, Position: player.PositionDefender},
	}
}

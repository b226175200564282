package simulate

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/playcard/internal/adapters/http/api"
	service "github.com/okian/playcard/internal/app"
	"github.com/okian/playcard/internal/domain/model"
	"github.com/okian/playcard/internal/domain/points"
)

func newTestServer() (*httptest.Server, *service.Service) {
	svc := service.New()
	server := api.NewServer(svc, svc)
	mux := http.NewServeMux()
	server.Register(context.Background(), mux)
	return httptest.NewServer(server.Handler(mux)), svc
}

func TestRunAgainstInProcessServer(t *testing.T) {
	Convey("Given an in-process playcard server", t, func() {
		ts, svc := newTestServer()
		defer ts.Close()
		ctx := context.Background()

		Convey("When a seeded simulation plays several games", func() {
			var out bytes.Buffer
			res, err := Run(ctx, &Config{
				BaseURL: ts.URL,
				Games:   3,
				Players: 5,
				Rounds:  12,
				Seed:    42,
				Timeout: 5 * time.Second,
				Output:  &out,
			}, nil)

			Convey("Then every total matches", func() {
				So(err, ShouldBeNil)
				So(res.Problems, ShouldBeEmpty)
				So(res.Stats.GamesCreated, ShouldEqual, 3)
				So(res.Stats.RoundsRecorded, ShouldEqual, 36)
				So(res.Stats.Mismatches, ShouldEqual, 0)
				So(res.Games, ShouldHaveLength, 3)
			})

			Convey("And the server kept every game with the last one current", func() {
				So(svc.ListGames(ctx), ShouldHaveLength, 3)
				cur := svc.CurrentGame(ctx)
				So(cur, ShouldNotBeNil)
				So(cur.ID, ShouldEqual, res.Games[2].ID)
			})

			Convey("And a report is rendered", func() {
				So(out.String(), ShouldContainSubstring, "SIMULATION")
				So(out.String(), ShouldContainSubstring, res.Games[0].ID)
			})
		})

		Convey("When the run asks for a reset", func() {
			res, err := Run(ctx, &Config{BaseURL: ts.URL, Games: 1, Rounds: 2, Seed: 7, Reset: true}, nil)

			Convey("Then the current game is cleared but history remains", func() {
				So(err, ShouldBeNil)
				So(res.Problems, ShouldBeEmpty)
				So(svc.CurrentGame(ctx), ShouldBeNil)
				So(svc.ListGames(ctx), ShouldHaveLength, 1)
			})
		})

		Convey("When zero rounds are requested", func() {
			res, err := Run(ctx, &Config{BaseURL: ts.URL, Games: 1, Players: 2, Rounds: 0}, nil)

			Convey("Then games are created with zero totals", func() {
				So(err, ShouldBeNil)
				So(res.Stats.RoundsRecorded, ShouldEqual, 0)
				for _, p := range res.Games[0].Players {
					So(p.TotalPoints, ShouldEqual, int64(0))
				}
			})
		})
	})
}

func TestRunUnhealthyServer(t *testing.T) {
	Convey("Given a server that fails health checks", t, func() {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer ts.Close()

		Convey("Then the run stops before creating games", func() {
			res, err := Run(context.Background(), &Config{BaseURL: ts.URL}, nil)
			So(err, ShouldNotBeNil)
			So(res, ShouldBeNil)
		})
	})
}

func TestGenerator(t *testing.T) {
	Convey("Given two generators with the same seed", t, func() {
		a, b := newGenerator(9), newGenerator(9)
		ids := []string{"p1", "p2", "p3"}

		Convey("Then they produce identical rosters and rounds", func() {
			So(a.roster(0, 4), ShouldResemble, b.roster(0, 4))
			for i := 0; i < 20; i++ {
				ra, rb := a.round(ids), b.round(ids)
				So(len(ra), ShouldEqual, len(rb))
				for id, v := range ra {
					So(string(v.Raw()), ShouldEqual, string(rb[id].Raw()))
				}
			}
		})
	})
}

func TestVerification(t *testing.T) {
	Convey("Given a game and expected totals", t, func() {
		g := &model.Game{ID: "g1", Players: []model.Player{
			{ID: "a", Name: "Ann", TotalPoints: 10},
			{ID: "b", Name: "Bo", TotalPoints: 10},
			{ID: "c", Name: "Cy", TotalPoints: 3},
		}}

		Convey("When totals agree", func() {
			So(verifyTotals(g, map[string]int64{"a": 10, "b": 10, "c": 3}), ShouldBeEmpty)
		})

		Convey("When a total differs", func() {
			problems := verifyTotals(g, map[string]int64{"a": 10, "b": 11, "c": 3})
			So(problems, ShouldHaveLength, 1)
			So(problems[0], ShouldContainSubstring, "Bo")
		})

		Convey("When the roster names were padded", func() {
			So(verifyRoster(&model.Game{ID: "g2", Players: []model.Player{{ID: "x", Name: "Ann"}, {ID: "y", Name: "Bo"}}},
				[]string{"  Ann ", "Bo"}), ShouldBeEmpty)
		})

		Convey("When standings share a rank on a tie", func() {
			st := []model.Standing{
				{Rank: 1, PlayerID: "a", TotalPoints: 10},
				{Rank: 1, PlayerID: "b", TotalPoints: 10},
				{Rank: 3, PlayerID: "c", TotalPoints: 3},
			}
			So(verifyStandings(st, map[string]int64{"a": 10, "b": 10, "c": 3}), ShouldBeEmpty)

			st[1].Rank = 2
			So(verifyStandings(st, map[string]int64{"a": 10, "b": 10, "c": 3}), ShouldNotBeEmpty)
		})
	})
}

func TestClientStatusErrors(t *testing.T) {
	Convey("Given a server with no active game", t, func() {
		ts, _ := newTestServer()
		defer ts.Close()
		client := NewClient(ts.URL, time.Second, nil)

		Convey("Then recording a round reports an unexpected status", func() {
			_, err := client.RecordRound(context.Background(), map[string]points.Value{"x": points.Int(1)})
			So(errors.Is(err, ErrStatus), ShouldBeTrue)
		})

		Convey("Then the current game is nil", func() {
			g, err := client.CurrentGame(context.Background())
			So(err, ShouldBeNil)
			So(g, ShouldBeNil)
		})
	})
}

package points_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/okian/playcard/internal/domain/points"
	. "github.com/smartystreets/goconvey/convey"
)

func decode(raw string) points.Value {
	var v points.Value
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		panic(err)
	}
	return v
}

func TestValueCoercion(t *testing.T) {
	Convey("Given submitted JSON deltas", t, func() {
		cases := []struct {
			raw  string
			want int64
		}{
			{`5`, 5},
			{`-3`, -3},
			{`0`, 0},
			{`-0`, 0},
			{`5.9`, 5},
			{`-5.9`, -5},
			{`1e3`, 1000},
			{`1e21`, 1},
			{`-2.5e22`, -2},
			{`1.5e-7`, 1},
			{`0.000001`, 0},
			{`1e400`, 0},
			{`"3"`, 3},
			{`"  12abc"`, 12},
			{`"-7"`, -7},
			{`"+4"`, 4},
			{`"0x1A"`, 26},
			{`"-0x10"`, -16},
			{`"0x"`, 0},
			{`"3.9"`, 3},
			{`"abc"`, 0},
			{`""`, 0},
			{`"99999999999999999999"`, math.MaxInt64},
			{`"-99999999999999999999"`, math.MinInt64},
			{`null`, 0},
			{`true`, 0},
			{`false`, 0},
			{`[5]`, 0},
			{`{"a":1}`, 0},
		}

		for _, c := range cases {
			Convey("When coercing "+c.raw, func() {
				So(decode(c.raw).Int(), ShouldEqual, c.want)
			})
		}
	})
}

func TestAdd(t *testing.T) {
	Convey("Given running totals near the int64 bounds", t, func() {
		Convey("Then ordinary sums are exact", func() {
			So(Add(40, 2), ShouldEqual, int64(42))
			So(Add(-40, -2), ShouldEqual, int64(-42))
			So(Add(math.MaxInt64, -1), ShouldEqual, int64(math.MaxInt64-1))
		})

		Convey("Then sums past the bounds saturate instead of wrapping", func() {
			So(Add(9_000_000_000_000_000_000, 9_000_000_000_000_000_000), ShouldEqual, int64(math.MaxInt64))
			So(Add(math.MaxInt64, 1), ShouldEqual, int64(math.MaxInt64))
			So(Add(math.MinInt64, -1), ShouldEqual, int64(math.MinInt64))
			So(Add(-9_000_000_000_000_000_000, -9_000_000_000_000_000_000), ShouldEqual, int64(math.MinInt64))
		})
	})
}

func TestValueKinds(t *testing.T) {
	Convey("Given values of each JSON type", t, func() {
		So(points.Missing().Kind(), ShouldEqual, points.KindMissing)
		So(decode(`null`).Kind(), ShouldEqual, points.KindMissing)
		So(decode(`12`).Kind(), ShouldEqual, points.KindNumber)
		So(decode(`-1`).Kind(), ShouldEqual, points.KindNumber)
		So(decode(`"12"`).Kind(), ShouldEqual, points.KindString)
		So(decode(`true`).Kind(), ShouldEqual, points.KindOther)
		So(decode(`[]`).Kind(), ShouldEqual, points.KindOther)
		So(points.Missing().IsMissing(), ShouldBeTrue)
		So(points.Int(1).IsMissing(), ShouldBeFalse)
	})
}

func TestValueRoundTripIsVerbatim(t *testing.T) {
	Convey("Given a points map decoded from a request body", t, func() {
		body := `{"p1":5,"p2":"3","p3":null,"p4":1.50,"p5":true}`
		var m map[string]points.Value
		So(json.Unmarshal([]byte(body), &m), ShouldBeNil)

		Convey("When it is encoded again", func() {
			out, err := json.Marshal(m)
			So(err, ShouldBeNil)

			Convey("Then every value is re-emitted as submitted", func() {
				So(string(out), ShouldEqual, `{"p1":5,"p2":"3","p3":null,"p4":1.50,"p5":true}`)
			})
		})
	})

	Convey("Given a struct holding a missing value", t, func() {
		out, err := json.Marshal(struct {
			V points.Value `json:"v"`
		}{})

		Convey("Then it encodes as null", func() {
			So(err, ShouldBeNil)
			So(string(out), ShouldEqual, `{"v":null}`)
		})
	})
}

func TestConstructors(t *testing.T) {
	Convey("Given values built in Go", t, func() {
		So(points.Int(42).Int(), ShouldEqual, 42)
		So(string(points.Int(-8).Raw()), ShouldEqual, "-8")
		So(points.String("7 tricks").Int(), ShouldEqual, 7)
		So(string(points.String(`a"b`).Raw()), ShouldEqual, `"a\"b"`)
		So(string(points.Missing().Raw()), ShouldEqual, "null")

		Convey("When wrapping raw JSON", func() {
			v, err := points.FromRaw([]byte(" 12 "))
			So(err, ShouldBeNil)
			So(v.Int(), ShouldEqual, 12)

			_, err = points.FromRaw([]byte("{nope"))
			So(err, ShouldEqual, points.ErrInvalidJSON)

			_, err = points.FromRaw(nil)
			So(err, ShouldEqual, points.ErrInvalidJSON)
		})

		Convey("When cloning", func() {
			v := points.String("5")
			c := v.Clone()
			So(string(c.Raw()), ShouldEqual, string(v.Raw()))
			So(points.Missing().Clone().IsMissing(), ShouldBeTrue)
		})
	})
}

package fn

import (
	"github.com/roach88/xfn/internal/aggregate"
	"github.com/roach88/xfn/internal/calendar"
	"github.com/roach88/xfn/internal/compare"
	"github.com/roach88/xfn/internal/datetime"
	"github.com/roach88/xfn/internal/duration"
	"github.com/roach88/xfn/internal/value"
)

// arg returns the scalar at position i. Apply has already checked its kind.
func arg[T value.Value](args []Operand, i int) T {
	return args[i].Value().(T)
}

func integer(args []Operand, i int) int64 {
	return int64(arg[value.Integer](args, i))
}

func boolean(b bool) (value.Value, error) { return value.Boolean(b), nil }

func boolResult(b bool, err error) (value.Value, error) {
	if err != nil {
		return nil, err
	}
	return value.Boolean(b), nil
}

func intResult(n int64) (value.Value, error) { return value.Integer(n), nil }

// lift adapts a typed (result, error) pair to Impl's return shape. A failed
// call never yields a partial value.
func lift[T value.Value](v T, err error) (value.Value, error) {
	if err != nil {
		return nil, err
	}
	return v, nil
}

func binaryNumeric(op func(a, b value.Value) (value.Value, error)) Impl {
	return func(args []Operand) (value.Value, error) {
		return op(args[0].Value(), args[1].Value())
	}
}

func unaryNumeric(op func(a value.Value) (value.Value, error)) Impl {
	return func(args []Operand) (value.Value, error) {
		return op(args[0].Value())
	}
}

func relation(op func(a, b value.Value) (bool, error)) Impl {
	return func(args []Operand) (value.Value, error) {
		return boolResult(op(args[0].Value(), args[1].Value()))
	}
}

func instantPart(get func(value.Instant) int64) Impl {
	return func(args []Operand) (value.Value, error) {
		return intResult(get(arg[value.Instant](args, 0)))
	}
}

func intervalPart(get func(value.Interval) int64) Impl {
	return func(args []Operand) (value.Value, error) {
		return intResult(get(arg[value.Interval](args, 0)))
	}
}

func instantRelation(rel func(a, b value.Instant) bool) Impl {
	return func(args []Operand) (value.Value, error) {
		return boolean(rel(arg[value.Instant](args, 0), arg[value.Instant](args, 1)))
	}
}

func intervalRelation(rel func(a, b value.Interval) bool) Impl {
	return func(args []Operand) (value.Value, error) {
		return boolean(rel(arg[value.Interval](args, 0), arg[value.Interval](args, 1)))
	}
}

func booleanBinary(op func(a, b value.Boolean) value.Boolean) Impl {
	return func(args []Operand) (value.Value, error) {
		return op(arg[value.Boolean](args, 0), arg[value.Boolean](args, 1)), nil
	}
}

func intervalBinary(op func(a, b value.Interval) (value.Interval, error)) Impl {
	return func(args []Operand) (value.Value, error) {
		return lift(op(arg[value.Interval](args, 0), arg[value.Interval](args, 1)))
	}
}

func instantShift(op func(value.Instant, value.Interval) (value.Instant, error)) Impl {
	return func(args []Operand) (value.Value, error) {
		return lift(op(arg[value.Instant](args, 0), arg[value.Interval](args, 1)))
	}
}

func integerFold(op string, fold func(value.Sequence[value.Integer]) (value.Integer, error)) Impl {
	return func(args []Operand) (value.Value, error) {
		seq, err := typed[value.Integer](args[0], op)
		if err != nil {
			return nil, err
		}
		return lift(fold(seq))
	}
}

func booleanFold[R value.Value](op string, fold func(value.Sequence[value.Boolean]) R) Impl {
	return func(args []Operand) (value.Value, error) {
		seq, err := typed[value.Boolean](args[0], op)
		if err != nil {
			return nil, err
		}
		return fold(seq), nil
	}
}

func intervalFold(op string, fold func(value.Sequence[value.Interval]) (value.Interval, error)) Impl {
	return func(args []Operand) (value.Value, error) {
		seq, err := typed[value.Interval](args[0], op)
		if err != nil {
			return nil, err
		}
		return lift(fold(seq))
	}
}

func civilArgs(args []Operand) calendar.Civil {
	return calendar.Civil{
		Year:        integer(args, 0),
		Month:       int(integer(args, 1)),
		Day:         int(integer(args, 2)),
		Hour:        int(integer(args, 3)),
		Minute:      int(integer(args, 4)),
		Second:      int(integer(args, 5)),
		Microsecond: int(integer(args, 6)),
	}
}

// offsetMinutes converts an interval to a whole number of offset minutes.
func offsetMinutes(op string, d value.Interval) (int, error) {
	if d.Micros()%calendar.MicrosPerMinute != 0 {
		return 0, value.Fail(value.CodeInvalidTimezone, op, "offset %d microseconds is not a whole number of minutes", d.Micros())
	}
	minutes := d.Micros() / calendar.MicrosPerMinute
	if minutes < value.MinOffsetMinutes || minutes > value.MaxOffsetMinutes {
		return 0, value.Fail(value.CodeInvalidTimezone, op, "offset %d minutes outside -840..840", minutes)
	}
	return int(minutes), nil
}

func (r *Registry) bindings() map[string]Impl {
	e := r.num
	return map[string]Impl{
		// Boolean
		"fn:true":  func([]Operand) (value.Value, error) { return boolean(true) },
		"fn:false": func([]Operand) (value.Value, error) { return boolean(false) },
		"fn:not": func(args []Operand) (value.Value, error) {
			return compare.Not(arg[value.Boolean](args, 0)), nil
		},
		"op:boolean-equal":        booleanBinary(compare.BooleanEqual),
		"op:boolean-less-than":    booleanBinary(compare.BooleanLessThan),
		"op:boolean-greater-than": booleanBinary(compare.BooleanGreaterThan),

		// Numeric
		"op:numeric-add":            binaryNumeric(e.Add),
		"op:numeric-subtract":       binaryNumeric(e.Subtract),
		"op:numeric-multiply":       binaryNumeric(e.Multiply),
		"op:numeric-divide":         binaryNumeric(e.Divide),
		"op:numeric-integer-divide": binaryNumeric(e.IntegerDivide),
		"op:numeric-mod":            binaryNumeric(e.Mod),
		"op:numeric-unary-plus":     unaryNumeric(e.UnaryPlus),
		"op:numeric-unary-minus":    unaryNumeric(e.UnaryMinus),
		"op:numeric-equal":          relation(e.Equal),
		"op:numeric-less-than":      relation(e.LessThan),
		"op:numeric-greater-than":   relation(e.GreaterThan),
		"fn:abs":                    unaryNumeric(e.Abs),
		"fn:round":                  unaryNumeric(e.Round),
		"fn:ceiling":                unaryNumeric(e.Ceiling),
		"fn:floor":                  unaryNumeric(e.Floor),
		"xfn:min":                   binaryNumeric(e.Min),
		"xfn:max":                   binaryNumeric(e.Max),

		// Casts
		"xs:integer": func(args []Operand) (value.Value, error) { return lift(e.CastToInteger(args[0].Value())) },
		"xs:float":   func(args []Operand) (value.Value, error) { return lift(e.CastToFloat(args[0].Value())) },
		"xs:double":  func(args []Operand) (value.Value, error) { return lift(e.CastToDouble(args[0].Value())) },

		// Instants
		"xfn:dateTime": func(args []Operand) (value.Value, error) {
			return lift(datetime.FromCivil(civilArgs(args)))
		},
		"xfn:dateTime-with-offset": func(args []Operand) (value.Value, error) {
			return lift(datetime.FromCivilWithOffset(civilArgs(args), int(integer(args, 7))))
		},
		"xfn:dateTime-from-epoch": func(args []Operand) (value.Value, error) {
			return lift(datetime.FromEpochMicros(integer(args, 0)))
		},
		"xfn:dateTime-from-epoch-with-offset": func(args []Operand) (value.Value, error) {
			return lift(datetime.FromEpochMicrosWithOffset(integer(args, 0), int(integer(args, 1))))
		},
		"xfn:epoch-microseconds":         instantPart(value.Instant.Micros),
		"fn:year-from-dateTime":          instantPart(datetime.YearOf),
		"fn:month-from-dateTime":         instantPart(datetime.MonthOf),
		"fn:day-from-dateTime":           instantPart(datetime.DayOf),
		"fn:hours-from-dateTime":         instantPart(datetime.HoursOf),
		"fn:minutes-from-dateTime":       instantPart(datetime.MinutesOf),
		"xfn:microseconds-from-dateTime": instantPart(datetime.MicrosecondOf),
		"fn:seconds-from-dateTime": func(args []Operand) (value.Value, error) {
			return lift(value.RatioFromDecimal(datetime.FractionalSecondsOf(arg[value.Instant](args, 0))))
		},
		"fn:timezone-from-dateTime": func(args []Operand) (value.Value, error) {
			tz, ok := datetime.TimezoneOf(arg[value.Instant](args, 0))
			if !ok {
				return nil, nil
			}
			return tz, nil
		},
		"fn:adjust-dateTime-to-timezone": func(args []Operand) (value.Value, error) {
			minutes, err := offsetMinutes("fn:adjust-dateTime-to-timezone", arg[value.Interval](args, 1))
			if err != nil {
				return nil, err
			}
			return lift(datetime.AdjustToTimezone(arg[value.Instant](args, 0), minutes))
		},
		"xfn:remove-timezone": func(args []Operand) (value.Value, error) {
			return datetime.RemoveTimezone(arg[value.Instant](args, 0)), nil
		},
		"op:dateTime-equal":        instantRelation(datetime.Equal),
		"op:dateTime-less-than":    instantRelation(datetime.LessThan),
		"op:dateTime-greater-than": instantRelation(datetime.GreaterThan),
		"op:subtract-dateTimes": func(args []Operand) (value.Value, error) {
			return lift(datetime.Difference(arg[value.Instant](args, 0), arg[value.Instant](args, 1)))
		},
		"op:add-dayTimeDuration-to-dateTime":        instantShift(datetime.Add),
		"op:subtract-dayTimeDuration-from-dateTime": instantShift(datetime.Subtract),

		// Intervals
		"xfn:dayTimeDuration": func(args []Operand) (value.Value, error) {
			return lift(duration.FromComponents(integer(args, 0), integer(args, 1), integer(args, 2),
				integer(args, 3), integer(args, 4), bool(arg[value.Boolean](args, 5))))
		},
		"xfn:dayTimeDuration-from-microseconds": func(args []Operand) (value.Value, error) {
			return lift(duration.FromMicros(integer(args, 0)))
		},
		"xfn:total-microseconds":       intervalPart(value.Interval.Micros),
		"op:add-dayTimeDurations":      intervalBinary(duration.Add),
		"op:subtract-dayTimeDurations": intervalBinary(duration.Subtract),
		"xfn:negate-dayTimeDuration": func(args []Operand) (value.Value, error) {
			return duration.Negate(arg[value.Interval](args, 0)), nil
		},
		"op:multiply-dayTimeDuration": func(args []Operand) (value.Value, error) {
			return lift(duration.Multiply(arg[value.Interval](args, 0), integer(args, 1)))
		},
		"op:divide-dayTimeDuration": func(args []Operand) (value.Value, error) {
			return lift(duration.Divide(arg[value.Interval](args, 0), integer(args, 1)))
		},
		"op:divide-dayTimeDuration-by-dayTimeDuration": func(args []Operand) (value.Value, error) {
			return lift(duration.DivideByInterval(arg[value.Interval](args, 0), arg[value.Interval](args, 1)))
		},
		"op:dayTimeDuration-equal":        intervalRelation(duration.Equal),
		"op:dayTimeDuration-less-than":    intervalRelation(duration.LessThan),
		"op:dayTimeDuration-greater-than": intervalRelation(duration.GreaterThan),
		"fn:days-from-duration":           intervalPart(duration.DaysOf),
		"fn:hours-from-duration":          intervalPart(duration.HoursOf),
		"fn:minutes-from-duration":        intervalPart(duration.MinutesOf),
		"xfn:microseconds-from-duration":  intervalPart(duration.MicrosecondsOf),
		"fn:seconds-from-duration": func(args []Operand) (value.Value, error) {
			return lift(value.RatioFromDecimal(duration.FractionalSecondsOf(arg[value.Interval](args, 0))))
		},
		"xfn:is-negative-duration": func(args []Operand) (value.Value, error) {
			return boolean(duration.IsNegative(arg[value.Interval](args, 0)))
		},

		// Comparison facade
		"xfn:equal":        relation(r.cmp.Equal),
		"xfn:less-than":    relation(r.cmp.LessThan),
		"xfn:greater-than": relation(r.cmp.GreaterThan),
		"xfn:compare": func(args []Operand) (value.Value, error) {
			n, err := r.cmp.Compare(args[0].Value(), args[1].Value())
			if err != nil {
				return nil, err
			}
			return intResult(int64(n))
		},

		// Aggregates
		"fn:empty":    func(args []Operand) (value.Value, error) { return boolean(aggregate.IsEmpty(args[0].values())) },
		"fn:exists":   func(args []Operand) (value.Value, error) { return boolean(aggregate.Exists(args[0].values())) },
		"fn:count":    func(args []Operand) (value.Value, error) { return aggregate.Count(args[0].values()), nil },
		"xfn:sum":     integerFold("xfn:sum", aggregate.Sum),
		"xfn:avg":     integerFold("xfn:avg", aggregate.Avg),
		"xfn:min-seq": integerFold("xfn:min-seq", aggregate.MinSeq),
		"xfn:max-seq": integerFold("xfn:max-seq", aggregate.MaxSeq),
		"fn:sum": func(args []Operand) (value.Value, error) {
			return aggregate.SumNumeric(e, args[0].values())
		},
		"fn:avg": func(args []Operand) (value.Value, error) {
			return aggregate.AvgNumeric(e, args[0].values())
		},
		"fn:min": func(args []Operand) (value.Value, error) {
			return aggregate.MinOf(r.num, r.cmp, args[0].values())
		},
		"fn:max": func(args []Operand) (value.Value, error) {
			return aggregate.MaxOf(r.num, r.cmp, args[0].values())
		},
		"xfn:sum-dayTimeDurations": intervalFold("xfn:sum-dayTimeDurations", aggregate.SumIntervals),
		"xfn:avg-dayTimeDurations": intervalFold("xfn:avg-dayTimeDurations", aggregate.AvgIntervals),
		"xfn:all-true":             booleanFold("xfn:all-true", aggregate.AllTrue),
		"xfn:any-true":             booleanFold("xfn:any-true", aggregate.AnyTrue),
		"xfn:count-true":           booleanFold("xfn:count-true", aggregate.CountTrue),
	}
}

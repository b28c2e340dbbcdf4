package registry

import "github.com/mustangtools/fuse2tone/pkg/adaptor"

// Shared slot instances for the standard amp tone stack. Multiple
// descriptors reference the same slot values; slots are never mutated
// after construction.
var (
	defaultKnob = adaptor.NewContinuous()

	slotVolume   = ParamSlot{Name: "volume", DisplayName: "VOLUME", Adaptor: defaultKnob}
	slotGain     = ParamSlot{Name: "gain", DisplayName: "GAIN", Adaptor: defaultKnob}
	slotTreble   = ParamSlot{Name: "treble", DisplayName: "TREBLE", Adaptor: defaultKnob}
	slotMid      = ParamSlot{Name: "mid", DisplayName: "MIDDLE", Adaptor: defaultKnob}
	slotBass     = ParamSlot{Name: "bass", DisplayName: "BASS", Adaptor: defaultKnob}
	slotPresence = ParamSlot{Name: "presence", DisplayName: "PRESENCE", Adaptor: defaultKnob}

	// Noise gate depth is stored in the FUSE block but has no knob on
	// the Tone UI; 65535 marks it undefined.
	slotGateDepth = ParamSlot{Name: "gateDepth", Adaptor: defaultKnob}

	slotCabinet = ParamSlot{
		Name:        "cabinet",
		DisplayName: "CABINET",
		Adaptor: adaptor.NewEnumerated(
			[]string{"1x10", "1x12", "2x12", "4x10", "4x12"},
			map[string]string{
				"1x10": "1X10", "1x12": "1X12", "2x12": "2X12",
				"4x10": "4X10", "4x12": "4X12",
			},
		),
	}
	slotBright = ParamSlot{Name: "bright", DisplayName: "BRIGHT", Adaptor: adaptor.NewBoolean()}

	slotLevel = ParamSlot{Name: "level", DisplayName: "LEVEL", Adaptor: defaultKnob}
	slotRate  = ParamSlot{Name: "rate", DisplayName: "RATE", Adaptor: defaultKnob}
	slotDepth = ParamSlot{Name: "depth", DisplayName: "DEPTH", Adaptor: defaultKnob}

	slotFeedback = ParamSlot{Name: "feedback", DisplayName: "FEEDBACK", Adaptor: defaultKnob}
	slotTime     = ParamSlot{
		Name:        "time",
		DisplayName: "TIME",
		Adaptor: adaptor.NewContinuousRange(
			adaptor.DefaultNativeMin, adaptor.DefaultNativeMax, 0.0, 1.0,
			adaptor.DisplayRange{Min: 0, Max: 1000, Precision: 0, Unit: " ms"},
		),
	}

	slotDecay   = ParamSlot{Name: "decay", DisplayName: "DECAY", Adaptor: defaultKnob}
	slotDwell   = ParamSlot{Name: "dwell", DisplayName: "DWELL", Adaptor: defaultKnob}
	slotDiffuse = ParamSlot{Name: "diffusion", DisplayName: "DIFFUSE", Adaptor: defaultKnob}
	slotTone    = ParamSlot{Name: "tone", DisplayName: "TONE", Adaptor: defaultKnob}
)

// ampSlots is the position layout shared by every mapped amp model.
// Positions 2 and 3 (GAIN2, MASTER VOLUME) have no Tone counterpart and
// are left unmapped so the converter preserves and counts them.
var ampSlots = map[int]ParamSlot{
	0:  slotVolume,
	1:  slotGain,
	4:  slotTreble,
	5:  slotMid,
	6:  slotBass,
	7:  slotPresence,
	9:  slotGateDepth,
	10: slotCabinet,
	12: slotBright,
}

// Builtin returns the registry for the mapped subset of Mustang V2
// modules. The registry is constructed fresh on every call; callers
// hold their own reference rather than sharing a package global.
func Builtin() *Registry {
	r, err := New(
		&Descriptor{
			Category: Amplifier, NativeID: 117,
			FenderID: "Twin57", DisplayName: "'57 Twin",
			Slots: ampSlots,
		},
		&Descriptor{
			Category: Amplifier, NativeID: 103,
			FenderID: "Deluxe57", DisplayName: "'57 Deluxe",
			Slots: ampSlots,
		},
		&Descriptor{
			Category: Amplifier, NativeID: 118,
			FenderID: "Bassman59", DisplayName: "'59 Bassman",
			Slots: ampSlots,
		},
		&Descriptor{
			Category: Stomp, NativeID: 60,
			FenderID: "Overdrive", DisplayName: "Overdrive",
			Slots: map[int]ParamSlot{
				0: slotLevel,
				1: slotGain,
				2: {Name: "low", DisplayName: "LOW", Adaptor: defaultKnob},
				3: slotMid,
				4: {Name: "high", DisplayName: "HIGH", Adaptor: defaultKnob},
			},
		},
		&Descriptor{
			Category: Stomp, NativeID: 73,
			FenderID: "SimpleCompressor", DisplayName: "Compressor",
			Slots: map[int]ParamSlot{
				0: {
					Name:        "amount",
					DisplayName: "AMOUNT",
					Adaptor: adaptor.NewEnumerated(
						[]string{"low", "medium", "high", "super"},
						map[string]string{"low": "LOW", "medium": "MID", "high": "HIGH", "super": "MAX"},
					),
				},
			},
		},
		&Descriptor{
			Category: Modulation, NativeID: 18,
			FenderID: "Chorus", DisplayName: "Chorus",
			Slots: map[int]ParamSlot{
				0: slotLevel,
				1: slotRate,
				2: slotDepth,
			},
		},
		&Descriptor{
			Category: Delay, NativeID: 22,
			FenderID: "MonoDelay", DisplayName: "Mono Delay",
			Slots: map[int]ParamSlot{
				0: slotLevel,
				1: slotTime,
				2: slotFeedback,
			},
		},
		&Descriptor{
			Category: Reverb, NativeID: 10,
			FenderID: "SmallHall65", DisplayName: "'65 Spring",
			Slots: map[int]ParamSlot{
				0: slotLevel,
				1: slotDecay,
				2: slotDwell,
				3: slotDiffuse,
				4: slotTone,
			},
		},
		&Descriptor{
			Category: Amplifier, NativeID: PassthroughID,
			FenderID: "DUBS_Passthru", DisplayName: "Empty",
			Slots: map[int]ParamSlot{},
		},
	)
	if err != nil {
		// The builtin table is compile-time data; a constraint violation
		// here is a programming error, not an input error.
		panic(err)
	}
	return r
}

package registry

import (
	"github.com/jlgabriel/Aerofly-FS4-Bridge/internal/sdk"
	"github.com/jlgabriel/Aerofly-FS4-Bridge/internal/snapshot"
)

// variable is one row of the authoritative table. Logical indices are the
// row positions, so rows must only ever be appended for a given
// snapshot.LayoutVersion.
type variable struct {
	name     string
	dataType sdk.DataType
	flag     sdk.Flag
	access   sdk.Access
	unit     sdk.Unit
	field    snapshot.Field
}

// Shorthand for table readability.
const (
	tDouble = sdk.DataTypeDouble
	tVec2   = sdk.DataTypeVector2d
	tVec3   = sdk.DataTypeVector3d
	tString = sdk.DataTypeString

	fValue  = sdk.FlagValue
	fEvent  = sdk.FlagEvent
	fToggle = sdk.FlagToggle
	fActive = sdk.FlagActive
	fStep   = sdk.FlagStep
	fMove   = sdk.FlagMove
	fOffset = sdk.FlagOffset
	fState  = sdk.FlagState

	aR  = sdk.AccessRead
	aW  = sdk.AccessWrite
	aRW = sdk.AccessReadWrite

	uNone = sdk.UnitNone
	uSec  = sdk.UnitSecond
	uM    = sdk.UnitMeter
	uMS   = sdk.UnitMeterPerSecond
	uMS2  = sdk.UnitMeterPerSecondSquared
	uRad  = sdk.UnitRadiant
	uHz   = sdk.UnitHertz
)

var variables = []variable{
	// Aircraft position and orientation
	{"Aircraft.Latitude", tDouble, fValue, aR, uRad, 0},
	{"Aircraft.Longitude", tDouble, fValue, aR, uRad, 0},
	{"Aircraft.Altitude", tDouble, fValue, aR, uM, 0},
	{"Aircraft.Height", tDouble, fValue, aR, uM, 0},
	{"Aircraft.Pitch", tDouble, fValue, aR, uRad, 0},
	{"Aircraft.Bank", tDouble, fValue, aR, uRad, 0},
	{"Aircraft.TrueHeading", tDouble, fValue, aR, uRad, 0},
	{"Aircraft.MagneticHeading", tDouble, fValue, aR, uRad, 0},

	// Aircraft speeds
	{"Aircraft.IndicatedAirspeed", tDouble, fValue, aR, uMS, 0},
	{"Aircraft.GroundSpeed", tDouble, fValue, aR, uMS, 0},
	{"Aircraft.VerticalSpeed", tDouble, fValue, aR, uMS, 0},
	{"Aircraft.MachNumber", tDouble, fValue, aR, uNone, 0},
	{"Aircraft.AngleOfAttack", tDouble, fValue, aR, uRad, 0},
	{"Aircraft.AngleOfAttackLimit", tDouble, fValue, aR, uRad, 0},
	{"Aircraft.RateOfTurn", tDouble, fValue, aR, uRad, 0},

	// Aircraft physics vectors
	{"Aircraft.Position", tVec3, fValue, aR, uM, snapshot.FieldPosition},
	{"Aircraft.Velocity", tVec3, fValue, aR, uMS, snapshot.FieldVelocity},
	{"Aircraft.Acceleration", tVec3, fValue, aR, uMS2, snapshot.FieldAcceleration},
	{"Aircraft.Wind", tVec3, fValue, aR, uMS, snapshot.FieldWind},

	// Aircraft state
	{"Aircraft.OnGround", tDouble, fValue, aR, uNone, 0},
	{"Aircraft.OnRunway", tDouble, fValue, aR, uNone, 0},
	{"Aircraft.Crashed", tDouble, fValue, aR, uNone, 0},
	{"Aircraft.Gear", tDouble, fValue, aRW, uNone, 0},
	{"Aircraft.Flaps", tDouble, fValue, aRW, uNone, 0},
	{"Aircraft.Throttle", tDouble, fValue, aRW, uNone, 0},
	{"Aircraft.AirBrake", tDouble, fValue, aRW, uNone, 0},
	{"Aircraft.ParkingBrake", tDouble, fValue, aRW, uNone, 0},
	{"Aircraft.PitchTrim", tDouble, fValue, aRW, uNone, 0},
	{"Aircraft.RudderTrim", tDouble, fValue, aRW, uNone, 0},
	{"Aircraft.AutoPitchTrim", tDouble, fToggle, aRW, uNone, 0},
	{"Aircraft.YawDamperEnabled", tDouble, fToggle, aRW, uNone, 0},
	{"Aircraft.APUAvailable", tDouble, fValue, aR, uNone, 0},
	{"Aircraft.ThrottleLimit", tDouble, fValue, aR, uNone, 0},

	// Engines
	{"Aircraft.EngineMaster1", tDouble, fToggle, aRW, uNone, 0},
	{"Aircraft.EngineMaster2", tDouble, fToggle, aRW, uNone, 0},
	{"Aircraft.EngineThrottle1", tDouble, fValue, aRW, uNone, 0},
	{"Aircraft.EngineThrottle2", tDouble, fValue, aRW, uNone, 0},
	{"Aircraft.EngineRunning1", tDouble, fValue, aR, uNone, 0},
	{"Aircraft.EngineRunning2", tDouble, fValue, aR, uNone, 0},
	{"Aircraft.EngineRotationSpeed1", tDouble, fValue, aR, uHz, 0},
	{"Aircraft.EngineRotationSpeed2", tDouble, fValue, aR, uHz, 0},
	{"Aircraft.Ignition1", tDouble, fValue, aRW, uNone, 0},
	{"Aircraft.Ignition2", tDouble, fValue, aRW, uNone, 0},
	{"Aircraft.Starter1", tDouble, fActive, aRW, uNone, 0},
	{"Aircraft.Starter2", tDouble, fActive, aRW, uNone, 0},

	// Nearest airport
	{"Aircraft.NearestAirportElevation", tDouble, fValue, aR, uM, 0},
	{"Aircraft.NearestAirportLocation", tVec2, fValue, aR, uRad, snapshot.FieldNearestAirportLocation},
	{"Aircraft.Name", tString, fValue, aR, uNone, snapshot.FieldAircraftName},
	{"Aircraft.NearestAirportIdentifier", tString, fValue, aR, uNone, snapshot.FieldNearestAirportID},
	{"Aircraft.NearestAirportName", tString, fValue, aR, uNone, snapshot.FieldNearestAirportName},

	// Performance speeds
	{"Performance.Speed.VS0", tDouble, fValue, aR, uMS, 0},
	{"Performance.Speed.VS1", tDouble, fValue, aR, uMS, 0},
	{"Performance.Speed.VFE", tDouble, fValue, aR, uMS, 0},
	{"Performance.Speed.VNO", tDouble, fValue, aR, uMS, 0},
	{"Performance.Speed.VNE", tDouble, fValue, aR, uMS, 0},
	{"Performance.Speed.VAPP", tDouble, fValue, aR, uMS, 0},
	{"Performance.Speed.Minimum", tDouble, fValue, aR, uMS, 0},
	{"Performance.Speed.Maximum", tDouble, fValue, aR, uMS, 0},
	{"Performance.Speed.MinimumFlapRetraction", tDouble, fValue, aR, uMS, 0},
	{"Performance.Speed.MaximumFlapExtension", tDouble, fValue, aR, uMS, 0},

	// Primary flight controls
	{"Controls.Pitch.Input", tDouble, fValue, aRW, uNone, 0},
	{"Controls.Roll.Input", tDouble, fValue, aRW, uNone, 0},
	{"Controls.Yaw.Input", tDouble, fValue, aRW, uNone, 0},
	{"Controls.Pitch.InputOffset", tDouble, fOffset, aW, uNone, 0},
	{"Controls.Roll.InputOffset", tDouble, fOffset, aW, uNone, 0},
	{"Controls.Yaw.InputActive", tDouble, fActive, aW, uNone, 0},
	{"Controls.Throttle", tDouble, fValue, aRW, uNone, 0},
	{"Controls.Throttle1", tDouble, fValue, aRW, uNone, 0},
	{"Controls.Throttle2", tDouble, fValue, aRW, uNone, 0},
	{"Controls.Throttle3", tDouble, fValue, aRW, uNone, 0},
	{"Controls.Throttle4", tDouble, fValue, aRW, uNone, 0},
	{"Controls.Throttle1Move", tDouble, fMove, aW, uNone, 0},
	{"Controls.Throttle2Move", tDouble, fMove, aW, uNone, 0},
	{"Controls.Flaps", tDouble, fValue, aRW, uNone, 0},
	{"Controls.FlapsEvent", tDouble, fEvent, aW, uNone, 0},
	{"Controls.Gear", tDouble, fValue, aRW, uNone, 0},
	{"Controls.GearToggle", tDouble, fToggle, aW, uNone, 0},
	{"Controls.WheelBrake.Left", tDouble, fValue, aRW, uNone, 0},
	{"Controls.WheelBrake.Right", tDouble, fValue, aRW, uNone, 0},
	{"Controls.WheelBrake.LeftActive", tDouble, fActive, aR, uNone, 0},
	{"Controls.WheelBrake.RightActive", tDouble, fActive, aR, uNone, 0},
	{"Controls.AirBrake", tDouble, fValue, aRW, uNone, 0},
	{"Controls.AirBrake.Arm", tDouble, fValue, aRW, uNone, 0},
	{"Controls.AirBrakeActive", tDouble, fActive, aR, uNone, 0},
	{"Controls.GliderAirBrake", tDouble, fValue, aRW, uNone, 0},
	{"Controls.NoseWheelSteering", tDouble, fValue, aRW, uNone, 0},
	{"Controls.Tiller", tDouble, fValue, aRW, uNone, 0},
	{"Controls.PedalsDisconnect", tDouble, fToggle, aRW, uNone, 0},

	// Trim
	{"Controls.AileronTrim", tDouble, fValue, aRW, uNone, 0},
	{"Controls.RudderTrim", tDouble, fValue, aRW, uNone, 0},
	{"Controls.TrimMove", tDouble, fMove, aW, uNone, 0},
	{"Controls.TrimStep", tDouble, fStep, aRW, uNone, 0},

	// Engine controls
	{"Controls.Mixture1", tDouble, fValue, aRW, uNone, 0},
	{"Controls.Mixture2", tDouble, fValue, aRW, uNone, 0},
	{"Controls.PropellerSpeed1", tDouble, fValue, aRW, uNone, 0},
	{"Controls.PropellerSpeed2", tDouble, fValue, aRW, uNone, 0},
	{"Controls.ThrustReverse1", tDouble, fValue, aRW, uNone, 0},
	{"Controls.ThrustReverse2", tDouble, fValue, aRW, uNone, 0},
	{"Controls.Magnetos1", tDouble, fValue, aRW, uNone, 0},
	{"Controls.FuelSelector", tDouble, fValue, aRW, uNone, 0},
	{"Controls.FuelShutOff", tDouble, fToggle, aRW, uNone, 0},

	// Helicopter controls
	{"Controls.Collective", tDouble, fValue, aRW, uNone, 0},
	{"Controls.CyclicPitch", tDouble, fValue, aRW, uNone, 0},
	{"Controls.CyclicRoll", tDouble, fValue, aRW, uNone, 0},
	{"Controls.TailRotor", tDouble, fValue, aRW, uNone, 0},
	{"Controls.RotorBrake", tDouble, fValue, aRW, uNone, 0},
	{"Controls.HelicopterThrottle1", tDouble, fValue, aRW, uNone, 0},
	{"Controls.HelicopterThrottle2", tDouble, fValue, aRW, uNone, 0},

	// Cockpit fixtures
	{"Controls.HideYoke.Left", tDouble, fToggle, aRW, uNone, 0},
	{"Controls.HideYoke.Right", tDouble, fToggle, aRW, uNone, 0},
	{"Controls.LeftSunBlocker", tDouble, fStep, aRW, uNone, 0},
	{"Controls.RightSunBlocker", tDouble, fStep, aRW, uNone, 0},
	{"Controls.Lighting.Instruments", tDouble, fValue, aRW, uNone, 0},
	{"Controls.Lighting.Panel", tDouble, fValue, aRW, uNone, 0},
	{"Controls.Lighting.LeftCabinOverheadLight", tDouble, fToggle, aRW, uNone, 0},
	{"Controls.Lighting.RightCabinOverheadLight", tDouble, fToggle, aRW, uNone, 0},

	// Doors and windows (step controls)
	{"Doors.Left", tDouble, fStep, aRW, uNone, 0},
	{"Doors.Right", tDouble, fStep, aRW, uNone, 0},
	{"Doors.LeftHandle", tDouble, fStep, aRW, uNone, 0},
	{"Doors.RightHandle", tDouble, fStep, aRW, uNone, 0},
	{"Windows.Left", tDouble, fStep, aRW, uNone, 0},
	{"Windows.Right", tDouble, fStep, aRW, uNone, 0},

	// Navigation radios
	{"Navigation.NAV1Frequency", tDouble, fValue, aRW, uHz, 0},
	{"Navigation.NAV1StandbyFrequency", tDouble, fValue, aRW, uHz, 0},
	{"Navigation.NAV1FrequencySwap", tDouble, fEvent, aW, uNone, 0},
	{"Navigation.NAV2Frequency", tDouble, fValue, aRW, uHz, 0},
	{"Navigation.NAV2StandbyFrequency", tDouble, fValue, aRW, uHz, 0},
	{"Navigation.NAV2FrequencySwap", tDouble, fEvent, aW, uNone, 0},
	{"Navigation.ADF1Frequency", tDouble, fValue, aRW, uHz, 0},
	{"Navigation.ADF1FrequencySwap", tDouble, fEvent, aW, uNone, 0},
	{"Navigation.ILS1Frequency", tDouble, fValue, aRW, uHz, 0},
	{"Navigation.ILS1Course", tDouble, fValue, aRW, uRad, 0},
	{"Navigation.SelectedCourse1", tDouble, fValue, aRW, uRad, 0},
	{"Navigation.SelectedCourse2", tDouble, fValue, aRW, uRad, 0},

	// Communication radios
	{"Communication.COM1Frequency", tDouble, fValue, aRW, uHz, 0},
	{"Communication.COM1StandbyFrequency", tDouble, fValue, aRW, uHz, 0},
	{"Communication.COM1FrequencySwap", tDouble, fEvent, aW, uNone, 0},
	{"Communication.COM2Frequency", tDouble, fValue, aRW, uHz, 0},
	{"Communication.COM2StandbyFrequency", tDouble, fValue, aRW, uHz, 0},
	{"Communication.COM2FrequencySwap", tDouble, fEvent, aW, uNone, 0},
	{"Communication.TransponderCode", tDouble, fValue, aRW, uNone, 0},

	// Autopilot
	{"Autopilot.Master", tDouble, fToggle, aRW, uNone, 0},
	{"Autopilot.Engaged", tDouble, fValue, aR, uNone, 0},
	{"Autopilot.Disengage", tDouble, fEvent, aW, uNone, 0},
	{"Autopilot.Heading", tDouble, fValue, aRW, uRad, 0},
	{"Autopilot.VerticalSpeed", tDouble, fValue, aRW, uMS, 0},
	{"Autopilot.SelectedHeading", tDouble, fValue, aRW, uRad, 0},
	{"Autopilot.SelectedAltitude", tDouble, fValue, aRW, uM, 0},
	{"Autopilot.SelectedVerticalSpeed", tDouble, fValue, aRW, uMS, 0},
	{"Autopilot.SelectedAirspeed", tDouble, fValue, aRW, uMS, 0},
	{"Autopilot.ThrottleEngaged", tDouble, fValue, aR, uNone, 0},
	{"Autopilot.SpeedManaged", tDouble, fValue, aR, uNone, 0},
	{"Autopilot.UseMachNumber", tDouble, fToggle, aRW, uNone, 0},

	// Warnings
	{"Warnings.MasterWarning", tDouble, fValue, aR, uNone, 0},
	{"Warnings.MasterCaution", tDouble, fValue, aR, uNone, 0},
	{"Warnings.EngineFire", tDouble, fValue, aR, uNone, 0},
	{"Warnings.LowOilPressure", tDouble, fValue, aR, uNone, 0},
	{"Warnings.LowFuelPressure", tDouble, fValue, aR, uNone, 0},
	{"Warnings.LowHydraulicPressure", tDouble, fValue, aR, uNone, 0},
	{"Warnings.LowVoltage", tDouble, fValue, aR, uNone, 0},
	{"Warnings.AltitudeAlert", tDouble, fValue, aR, uNone, 0},
	{"Warnings.WarningActive", tDouble, fActive, aR, uNone, 0},
	{"Warnings.WarningMute", tDouble, fEvent, aW, uNone, 0},

	// Simulation control
	{"Simulation.Pause", tDouble, fToggle, aRW, uNone, 0},
	{"Simulation.Sound", tDouble, fToggle, aRW, uNone, 0},
	{"Simulation.LiftUp", tDouble, fEvent, aW, uNone, 0},
	{"Simulation.FlightInformation", tDouble, fValue, aR, uNone, 0},
	{"Simulation.MovingMap", tDouble, fToggle, aRW, uNone, 0},
	{"Simulation.UseMouseControl", tDouble, fToggle, aRW, uNone, 0},
	{"Simulation.TimeChange", tDouble, fEvent, aW, uSec, 0},
	{"Simulation.Visibility", tDouble, fValue, aRW, uNone, 0},
	{"Simulation.Time", tDouble, fValue, aR, uSec, 0},
	{"Simulation.PlaybackStart", tDouble, fEvent, aW, uNone, 0},
	{"Simulation.PlaybackStop", tDouble, fEvent, aW, uNone, 0},
	{"Simulation.SettingSet", tDouble, fEvent, aW, uNone, 0},

	// View control
	{"View.Internal", tDouble, fToggle, aRW, uNone, 0},
	{"View.External", tDouble, fToggle, aRW, uNone, 0},
	{"View.Follow", tDouble, fToggle, aRW, uNone, 0},
	{"View.Category", tDouble, fValue, aRW, uNone, 0},
	{"View.Mode", tDouble, fValue, aRW, uNone, 0},
	{"View.Zoom", tDouble, fValue, aRW, uNone, 0},
	{"View.Pan.Horizontal", tDouble, fMove, aW, uNone, 0},
	{"View.Pan.Vertical", tDouble, fMove, aW, uNone, 0},
	{"View.Pan.Center", tDouble, fEvent, aW, uNone, 0},
	{"View.Look.Horizontal", tDouble, fMove, aW, uNone, 0},
	{"View.Look.Vertical", tDouble, fMove, aW, uNone, 0},
	{"View.OffsetX", tDouble, fOffset, aW, uNone, 0},
	{"View.OffsetY", tDouble, fOffset, aW, uNone, 0},
	{"View.OffsetZ", tDouble, fOffset, aW, uNone, 0},

	// UI commands
	{"Command.Execute", tDouble, fEvent, aW, uNone, 0},
	{"Command.Back", tDouble, fEvent, aW, uNone, 0},
	{"Command.Up", tDouble, fEvent, aW, uNone, 0},
	{"Command.Down", tDouble, fEvent, aW, uNone, 0},
	{"Command.Left", tDouble, fEvent, aW, uNone, 0},
	{"Command.Right", tDouble, fEvent, aW, uNone, 0},
	{"Command.MoveHorizontal", tDouble, fMove, aW, uNone, 0},
	{"Command.MoveVertical", tDouble, fMove, aW, uNone, 0},
	{"Command.Rotate", tDouble, fMove, aW, uNone, 0},
	{"Command.Zoom", tDouble, fMove, aW, uNone, 0},

	// Pressurization
	{"Pressurization.LandingElevation", tDouble, fValue, aRW, uM, 0},
	{"Pressurization.LandingElevationManual", tDouble, fToggle, aRW, uNone, 0},

	// Configuration
	{"Configuration.SelectedTakeOffFlaps", tDouble, fValue, aRW, uNone, 0},
	{"Configuration.SelectedLandingFlaps", tDouble, fValue, aRW, uNone, 0},
}

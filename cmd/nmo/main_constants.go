package main

// Default command-line flag values
const (
	defaultVelocity   = 2000.0 // m/s
	defaultOffset     = 1000.0 // m
	defaultDtMs       = 4.0
	defaultNumSamples = 500
)

// Test signal parameters
const (
	testSignalFrequency = 25.0 // Ricker peak frequency, Hz
	testEventTime       = 1.0  // zero-offset reflection time, s
)

// Demo parameters
const (
	demoEta       = 0.1  // anellipticity for the VTI demo
	demoCurvature = 40.0 // empirical curvature, ms/km²
	demoLongDtMs  = 2.0
)

// Unit conversions
const (
	msPerSecond      = 1000.0
	bytesPerKilobyte = 1024
)

package loadcalc

// Evaluate derives the load report for a circuit snapshot.
// Classification uses strict comparisons: a load equal to the 80% ceiling is safe,
// a load equal to the breaker rating is near limit.
func Evaluate(circuit Circuit) LoadReport {
	totalWatts := 0.0
	for _, device := range circuit.Devices {
		totalWatts += device.Watts
	}
	totalAmps := totalWatts / circuit.Voltage
	maxAmps := circuit.BreakerRating
	safeMaxAmps := maxAmps * SafeLoadFactor
	usagePercent := (totalAmps / maxAmps) * 100
	availableAmps := maxAmps - totalAmps
	availableWatts := availableAmps * circuit.Voltage

	report := LoadReport{
		CircuitID:         circuit.ID,
		TotalWatts:        totalWatts,
		TotalAmps:         totalAmps,
		MaxAmps:           maxAmps,
		SafeMaxAmps:       safeMaxAmps,
		UsagePercent:      usagePercent,
		AvailableAmps:     availableAmps,
		AvailableWatts:    availableWatts,
		MaxCapacityWatts:  circuit.Voltage * maxAmps,
		SafeCapacityWatts: safeMaxAmps * circuit.Voltage,
		Devices:           make([]DeviceLoad, 0, len(circuit.Devices)),
	}

	switch {
	case totalAmps > maxAmps:
		report.IsOverloaded = true
		report.Status = StatusOverloaded
	case totalAmps > safeMaxAmps:
		report.IsNearLimit = true
		report.Status = StatusNearLimit
	default:
		report.IsSafe = true
		report.Status = StatusSafe
	}

	for _, device := range circuit.Devices {
		report.Devices = append(report.Devices, EvaluateDevice(device, circuit))
	}
	return report
}

// EvaluateDevice returns a device's own draw against its circuit's breaker.
func EvaluateDevice(device Device, circuit Circuit) DeviceLoad {
	amps := device.Watts / circuit.Voltage
	return DeviceLoad{
		DeviceID:         device.ID,
		Name:             device.Name,
		Watts:            device.Watts,
		Amps:             amps,
		PercentOfMaxAmps: (amps / circuit.BreakerRating) * 100,
	}
}

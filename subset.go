package platefo

func take(v []float64, ix []int) []float64 {
	o := make([]float64, len(ix))
	for k, i := range ix {
		o[k] = v[i]
	}
	return o
}

func takeInt(v []int, ix []int) []int {
	o := make([]int, len(ix))
	for k, i := range ix {
		o[k] = v[i]
	}
	return o
}

func takeBool(v []bool, ix []int) []bool {
	o := make([]bool, len(ix))
	for k, i := range ix {
		o[k] = v[i]
	}
	return o
}

func takeTorque(t TorqueSet, ix []int) TorqueSet {
	return TorqueSet{take(t.X, ix), take(t.Y, ix), take(t.Z, ix), take(t.Mag, ix)}
}

func takeForce(f ForceSet, ix []int) ForceSet {
	return ForceSet{take(f.Lat, ix), take(f.Lon, ix), take(f.Mag, ix)}
}

// Filter returns an independent plate table holding only the plates
// of interest: those in plateIDs (nil keeps all) with area at or
// above minArea. The receiver is untouched.
func (p *Plates) Filter(plateIDs []int, minArea float64) *Plates {
	var want map[int]bool
	if plateIDs != nil {
		want = make(map[int]bool, len(plateIDs))
		for _, id := range plateIDs {
			want[id] = true
		}
	}
	var ix []int
	for j := 0; j < p.Len(); j++ {
		if want != nil && !want[p.PlateID[j]] {
			continue
		}
		if p.Area[j] < minArea {
			continue
		}
		ix = append(ix, j)
	}
	o := &Plates{
		PlateID:     takeInt(p.PlateID, ix),
		Area:        take(p.Area, ix),
		PoleLat:     take(p.PoleLat, ix),
		PoleLon:     take(p.PoleLon, ix),
		PoleAngle:   take(p.PoleAngle, ix),
		CentroidLat: take(p.CentroidLat, ix),
		CentroidLon: take(p.CentroidLon, ix),
		VLat:        take(p.VLat, ix),
		VLon:        take(p.VLon, ix),
		VMag:        take(p.VMag, ix),
	}
	o.Name = make([]string, len(ix))
	for k, i := range ix {
		o.Name[k] = p.Name[i]
	}
	o.SlabPullTorque, o.GPETorque, o.SlabBendTorque = takeTorque(p.SlabPullTorque, ix), takeTorque(p.GPETorque, ix), takeTorque(p.SlabBendTorque, ix)
	o.IntShearTorque, o.MantleDragTorque, o.ResidualTorque = takeTorque(p.IntShearTorque, ix), takeTorque(p.MantleDragTorque, ix), takeTorque(p.ResidualTorque, ix)
	o.SlabPullTorqueOpt, o.MantleDragTorqueOpt = takeTorque(p.SlabPullTorqueOpt, ix), takeTorque(p.MantleDragTorqueOpt, ix)
	o.SlabPullForce, o.GPEForce, o.SlabBendForce = takeForce(p.SlabPullForce, ix), takeForce(p.GPEForce, ix), takeForce(p.SlabBendForce, ix)
	o.IntShearForce, o.MantleDragForce, o.ResidualForce = takeForce(p.IntShearForce, ix), takeForce(p.MantleDragForce, ix), takeForce(p.ResidualForce, ix)
	return o
}

// Filter returns an independent slab table holding only the segments
// whose lower plate appears in the kept plate table.
func (s *Slabs) Filter(pl *Plates) *Slabs {
	keep := pl.Index()
	var ix []int
	for i := 0; i < s.Len(); i++ {
		if _, ok := keep[s.LowerPlateID[i]]; ok {
			ix = append(ix, i)
		}
	}
	return &Slabs{
		Lat: take(s.Lat, ix), Lon: take(s.Lon, ix),
		TrenchSegmentLength: take(s.TrenchSegmentLength, ix),
		TrenchNormalAzimuth: take(s.TrenchNormalAzimuth, ix),
		LowerPlateID:        takeInt(s.LowerPlateID, ix),
		UpperPlateID:        takeInt(s.UpperPlateID, ix),
		TrenchPlateID:       takeInt(s.TrenchPlateID, ix),
		VLowerLat:           take(s.VLowerLat, ix), VLowerLon: take(s.VLowerLon, ix), VLowerMag: take(s.VLowerMag, ix), VLowerAzi: take(s.VLowerAzi, ix),
		VUpperLat: take(s.VUpperLat, ix), VUpperLon: take(s.VUpperLon, ix), VUpperMag: take(s.VUpperMag, ix), VUpperAzi: take(s.VUpperAzi, ix),
		VTrenchLat: take(s.VTrenchLat, ix), VTrenchLon: take(s.VTrenchLon, ix), VTrenchMag: take(s.VTrenchMag, ix), VTrenchAzi: take(s.VTrenchAzi, ix),
		VConvLat: take(s.VConvLat, ix), VConvLon: take(s.VConvLon, ix), VConvMag: take(s.VConvMag, ix),
		UpperPlateAge: take(s.UpperPlateAge, ix), UpperPlateThickness: take(s.UpperPlateThickness, ix), ContinentalArc: takeBool(s.ContinentalArc, ix),
		LowerPlateAge: take(s.LowerPlateAge, ix), LowerPlateThickness: take(s.LowerPlateThickness, ix),
		SedimentThickness: take(s.SedimentThickness, ix), SedimentFraction: take(s.SedimentFraction, ix), SlabLength: take(s.SlabLength, ix),
		SlabPullFMag: take(s.SlabPullFMag, ix), SlabPullFLat: take(s.SlabPullFLat, ix), SlabPullFLon: take(s.SlabPullFLon, ix),
		SlabBendFMag: take(s.SlabBendFMag, ix), SlabBendFLat: take(s.SlabBendFLat, ix), SlabBendFLon: take(s.SlabBendFLon, ix),
		IntShearFMag: take(s.IntShearFMag, ix), IntShearFLat: take(s.IntShearFLat, ix), IntShearFLon: take(s.IntShearFLon, ix),
	}
}

// Filter returns an independent point table holding only the points
// whose plate appears in the kept plate table.
func (p *Points) Filter(pl *Plates) *Points {
	keep := pl.Index()
	var ix []int
	for i := 0; i < p.Len(); i++ {
		if _, ok := keep[p.PlateID[i]]; ok {
			ix = append(ix, i)
		}
	}
	return &Points{
		Lat: take(p.Lat, ix), Lon: take(p.Lon, ix), PlateID: takeInt(p.PlateID, ix),
		SegLenLat: take(p.SegLenLat, ix), SegLenLon: take(p.SegLenLon, ix),
		VLat: take(p.VLat, ix), VLon: take(p.VLon, ix), VMag: take(p.VMag, ix),
		SeafloorAge: take(p.SeafloorAge, ix), U: take(p.U, ix),
		GPEFLat: take(p.GPEFLat, ix), GPEFLon: take(p.GPEFLon, ix), GPEFMag: take(p.GPEFMag, ix),
		DragFLat: take(p.DragFLat, ix), DragFLon: take(p.DragFLon, ix), DragFMag: take(p.DragFMag, ix),
	}
}

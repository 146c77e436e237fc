// SPDX-License-Identifier: MIT

package method

// BurdickSynthetic is the two-species, three-detector Pb method used for the
// synthetic Burdick datasets: Pb206 and Pb208 alternate between the axial ion
// counter and the flanking Faradays across sequences S1 and S2.
func BurdickSynthetic() *Method {
	return &Method{
		Name:        "BurdickBlSyntheticData",
		BaselineTag: DefaultBaselineTag,
		Species: []Species{
			{Name: "Pb206", Mass: 205.9744653},
			{Name: "Pb208", Mass: 207.9766521},
		},
		Detectors: []Detector{
			{Name: "Ax_Fara", Ordinal: 4, Role: Faraday},
			{Name: "Axial", Ordinal: 5, Role: IonCounter},
			{Name: "H1", Ordinal: 6, Role: Faraday},
		},
		Cells: []SequenceCell{
			{Detector: "Ax_Fara", Tag: "S2", Species: "Pb206"},
			{Detector: "Axial", Tag: "S1", Species: "Pb206"},
			{Detector: "Axial", Tag: "S2", Species: "Pb208"},
			{Detector: "H1", Tag: "S1", Species: "Pb208"},
		},
	}
}

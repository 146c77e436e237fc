// SPDX-License-Identifier: MIT

// Package ingest reads Phoenix-style delimited mass-spectrometer exports into
// raw integration rows.
//
// File layout:
//
//	Version,1.00            header: one "key,value..." record per line
//	Method,BurdickBlSyntheticData
//	#START                  marker
//	ID,Block,Cycle,Integ,Time,Mass,L5,L4,...   column names
//	Bl1,1,0,1,0.0,207.9,1.2,...               data rows
//	...
//	#END                    optional terminator
//
// Each data row is sequence tag, block, cycle (0 for baseline), integration,
// time, mass, then one reading per detector column. A detector ordinal in a
// method is an index into those readings. Blank lines are ignored.
//
// A malformed data row fails the whole parse with a *MalformedInputError that
// names the line and column; nothing is skipped silently.
package ingest

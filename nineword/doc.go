// Package nineword implements the wire format used to carry 9-bit
// command/data words over an 8-bit SPI bus (MIPI DBI Type C Option 1
// emulation).
//
// Each bus word is nine bits: a data/command flag in the top bit followed
// by one payload byte. Eight consecutive words (72 bits) pack into exactly
// nine wire bytes.
//
// Bit layout of a full group:
//
//	Words:  w0        w1        w2        ...       w7
//	Bits:   D76543210 D76543210 D76543210 ...       D76543210
//
// The first 64 bits (seven complete words plus the D flag of the eighth)
// form a big-endian 64-bit value; the eighth word's payload byte follows
// raw as the ninth wire byte:
//
//	byte 0    byte 1    ...  byte 7    byte 8
//	Dppppppp  pDpppppp  ...  ppppppD   pppppppp
//
// Unused word slots are left zero, which a DBI controller interprets as a
// no-op command. Two padded forms exist and are deliberately distinct:
//
//   - A lone command byte occupies the last word slot of a nine-byte group,
//     preceded by eight zero filler bytes (PackCommand).
//   - A trailing partial data group of one to seven bytes occupies the
//     leading word slots of an eight-byte block, no ninth byte (PackPartial).
//
// Production hardware offers no way to read the packed stream back, so the
// package also provides Unpack, a reference decoder used for testing.
package nineword

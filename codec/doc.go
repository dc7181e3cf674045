// Package codec implements the scalar, byte, bit and fixed-stride array codecs.
//
// Byte order is never stored as runtime state of the data: every call names its codec,
// so neighbouring fields of one record can use different orders.
//
//	v := codec.Read[uint32](codec.BE, window)       // whole bytes
//	f := codec.ReadBits[uint16](codec.BitLE, w, 3, 5) // 5-bit field at bit 3
//
// # Aligned and Unaligned Access
//
// A window whose length equals the scalar's natural width is read and written directly
// through the endian engine. Any other window length, up to 8 bytes, is staged through
// an 8-byte register. This is what lets bit-fields cross byte boundaries and lets
// 24-bit or 40-bit fields be read as the next wider scalar.
//
// Out-of-range windows, bit ranges and indexes are programming errors and panic.
package codec

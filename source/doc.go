// Package source opens the byte stream that feeds the differencer. A
// source is named by a target string:
//
//	/sys/kernel/debug/jitterentropy_testing/jent_raw_hires   file or debugfs node
//	serial:/dev/ttyACM0@115200                               serial port, 8N1
//	usb:0403:7840                                            USB bulk IN endpoint (Linux)
//
// Every source presents a blocking read: a read returns data, io.EOF or an
// error, never an empty timeout.
package source
